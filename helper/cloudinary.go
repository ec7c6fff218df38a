package helper

import (
	"context"
	"log"
	"mime/multipart"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Cloudinary init failed: %v", err)
	}
	return cld
}

// UploadToCloudinary sobe o arquivo e retorna a URL segura.
// Arquivos digitais vão como resource_type=raw, imagens passam por transformação.
func UploadToCloudinary(file *multipart.FileHeader, folder string) (string, error) {
	cld := InitCloudinary()

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	resourceType := "image"
	if strings.Contains(folder, "digital") {
		resourceType = "raw"
	}

	result, err := cld.Upload.Upload(context.Background(), src, uploader.UploadParams{
		Folder:         "criatividade-amor/" + folder,
		ResourceType:   resourceType,
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
	})
	if err != nil {
		return "", err
	}

	return result.SecureURL, nil
}

// DeleteFromCloudinary remove o asset a partir da URL persistida (best-effort)
func DeleteFromCloudinary(assetUrl string) error {
	cld := InitCloudinary()

	publicId, resourceType := extractPublicId(assetUrl)
	if publicId == "" {
		log.Printf("URL do Cloudinary não reconhecida, ignorando: %s", assetUrl)
		return nil
	}

	_, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{
		PublicID:     publicId,
		ResourceType: resourceType,
	})
	return err
}

// extractPublicId extrai o public_id do path
// (ex: .../image/upload/v123/criatividade-amor/products/abc.png)
func extractPublicId(assetUrl string) (string, string) {
	parts := strings.Split(assetUrl, "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx < 1 || uploadIdx+1 >= len(parts) {
		return "", ""
	}

	resourceType := parts[uploadIdx-1]
	if resourceType != "image" && resourceType != "video" && resourceType != "raw" {
		resourceType = "image"
	}

	rest := parts[uploadIdx+1:]
	// pula o segmento de versão (v123...)
	if len(rest) > 0 && strings.HasPrefix(rest[0], "v") {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return "", resourceType
	}

	publicId := strings.Join(rest, "/")
	if dot := strings.LastIndex(publicId, "."); dot != -1 && resourceType != "raw" {
		publicId = publicId[:dot]
	}
	return publicId, resourceType
}
