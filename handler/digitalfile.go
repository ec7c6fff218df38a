package handler

import (
	"log"
	"strings"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Formatos entregues no download. Outros formatos ficam armazenados mas
// nunca saem pela rota pública.
var deliverableTypes = map[string]bool{
	"application/pdf": true,
	"application/zip": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/svg+xml":   true,
}

var deliverableExtensions = map[string]bool{
	".pdf":  true,
	".zip":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".svg":  true,
}

func isDeliverable(file model.DigitalFile) bool {
	if deliverableTypes[strings.ToLower(file.FileType)] {
		return true
	}
	name := strings.ToLower(file.Name)
	if dot := strings.LastIndex(name, "."); dot != -1 {
		return deliverableExtensions[name[dot:]]
	}
	return false
}

func hasPurchase(email string, productId uint) bool {
	var count int64
	database.DB.Model(&model.PurchaseHistory{}).
		Where("customer_email = ? AND product_id = ?", email, productId).
		Count(&count)
	return count > 0
}

// DownloadDigitalFiles libera os downloads de um produto digital comprado
func DownloadDigitalFiles(c *fiber.Ctx) error {
	productId := c.Params("productId")
	email := c.Query("email")
	if email == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email é obrigatório", nil)
	}

	var product model.Product
	if err := database.DB.Preload("DigitalFiles", "active = ?", true).
		First(&product, productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}
	if product.Type != constants.PRODUCT_DIGITAL {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Este produto não possui arquivos digitais", nil)
	}
	if len(product.DigitalFiles) == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Nenhum arquivo disponível para este produto", nil)
	}

	if !hasPurchase(email, product.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Compra não encontrada para este email", nil)
	}

	files := make([]fiber.Map, 0, len(product.DigitalFiles))
	for _, file := range product.DigitalFiles {
		if !isDeliverable(file) {
			continue
		}
		files = append(files, fiber.Map{
			"id":       file.ID,
			"name":     file.Name,
			"fileUrl":  file.FileUrl,
			"fileSize": file.FileSize,
			"fileType": file.FileType,
		})
	}

	// contador só anda quando algo foi de fato liberado
	if len(files) > 0 {
		database.DB.Model(&model.DigitalFile{}).
			Where("product_id = ? AND active = ?", product.ID, true).
			Update("download_count", gorm.Expr("download_count + 1"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"product": fiber.Map{"id": product.ID, "title": product.Title},
		"files":   files,
	})
}

// CheckDigitalAccess informa se o email tem acesso aos arquivos do produto
func CheckDigitalAccess(c *fiber.Ctx) error {
	productId := c.Params("productId")
	email := c.Query("email")
	if email == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email é obrigatório", nil)
	}

	var product model.Product
	if err := database.DB.First(&product, productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"hasAccess": product.Type == constants.PRODUCT_DIGITAL && hasPurchase(email, product.ID),
	})
}

// UploadDigitalFile sobe um arquivo digital para o produto (admin)
func UploadDigitalFile(c *fiber.Ctx) error {
	productId := c.Params("id")

	var product model.Product
	if err := database.DB.First(&product, productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Arquivo é obrigatório", err)
	}

	url, err := helper.UploadToCloudinary(file, "digital")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Falha ao enviar arquivo", err)
	}

	name := c.FormValue("name")
	if name == "" {
		name = file.Filename
	}

	digitalFile := model.DigitalFile{
		ProductId:   product.ID,
		Name:        name,
		Description: utils.StringPtr(c.FormValue("description")),
		FileUrl:     url,
		FileSize:    file.Size,
		FileType:    file.Header.Get("Content-Type"),
		Active:      true,
	}
	if err := database.DB.Create(&digitalFile).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, digitalFile)
}

// ListDigitalFiles lista os arquivos de um produto (admin)
func ListDigitalFiles(c *fiber.Ctx) error {
	productId := c.Params("id")

	var files []model.DigitalFile
	if err := database.DB.Where("product_id = ?", productId).
		Order("created_at ASC").Find(&files).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, files)
}

// UpdateDigitalFile atualiza metadados do arquivo (admin)
func UpdateDigitalFile(c *fiber.Ctx) error {
	fileId := c.Params("fileId")

	var input model.UpdateDigitalFileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var file model.DigitalFile
	if err := database.DB.First(&file, fileId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Arquivo não encontrado", err)
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&file).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	database.DB.First(&file, file.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, file)
}

// DeleteDigitalFile remove o arquivo do produto (admin)
func DeleteDigitalFile(c *fiber.Ctx) error {
	fileId := c.Params("fileId")

	var file model.DigitalFile
	if err := database.DB.First(&file, fileId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Arquivo não encontrado", err)
	}

	// o registro some mesmo se a limpeza remota falhar
	if err := helper.DeleteFromCloudinary(file.FileUrl); err != nil {
		log.Printf("Falha ao remover arquivo %d do Cloudinary: %v", file.ID, err)
	}

	if err := database.DB.Delete(&file).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DigitalFileStats totais de arquivos e downloads (admin)
func DigitalFileStats(c *fiber.Ctx) error {
	var totalFiles, activeFiles int64
	var totalDownloads int64

	database.DB.Model(&model.DigitalFile{}).Count(&totalFiles)
	database.DB.Model(&model.DigitalFile{}).Where("active = ?", true).Count(&activeFiles)
	database.DB.Model(&model.DigitalFile{}).
		Select("COALESCE(SUM(download_count), 0)").Scan(&totalDownloads)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalFiles":     totalFiles,
		"activeFiles":    activeFiles,
		"totalDownloads": totalDownloads,
	})
}
