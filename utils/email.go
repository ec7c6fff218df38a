package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"strconv"
	"strings"

	"loja_manager/model"

	"gopkg.in/gomail.v2"
)

// FormatBRL formata valor em reais (R$ 1.234,56)
func FormatBRL(value float64) string {
	s := strconv.FormatFloat(value, 'f', 2, 64)
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	return "R$ " + b.String() + "," + parts[1]
}

func sendMail(to, subject, htmlBody string) {
	host := os.Getenv("SMTP_HOST")
	username := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASS")
	from := os.Getenv("MAIL_FROM")
	if from == "" {
		from = username
	}
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 465
	}

	if host == "" || username == "" || password == "" {
		log.Println("SMTP não configurado, envio de email ignorado")
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Falha ao enviar email para %s: %v", to, err)
	}
}

func renderTemplate(tmpl string, data any) (string, error) {
	t, err := template.New("email").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}

const welcomeTemplate = `
<p>Olá {{.FirstName}},</p>
<p>Seu cadastro na <strong>Criatividade e Amor</strong> foi concluído com sucesso. Agora você pode acompanhar pedidos, acessar downloads e receber novidades em primeira mão.</p>
<p>Use o mesmo email ({{.Email}}) para fazer login quando quiser.</p>
<p>Abraços,<br/>Equipe Criatividade e Amor</p>
`

// SendWelcomeEmail envia email de boas-vindas (async, best-effort)
func SendWelcomeEmail(name, email string) {
	go func() {
		firstName := strings.SplitN(name, " ", 2)[0]
		if firstName == "" {
			firstName = "criativa(o)"
		}
		body, err := renderTemplate(welcomeTemplate, map[string]string{
			"FirstName": firstName,
			"Email":     email,
		})
		if err != nil {
			log.Printf("Falha ao renderizar email de boas-vindas: %v", err)
			return
		}
		sendMail(email, "Bem-vinda(o) à Criatividade e Amor!", body)
	}()
}

const orderConfirmationTemplate = `
<p>Olá {{.CustomerName}},</p>
<p>Recebemos o seu pedido <strong>#{{.OrderNumber}}</strong> e já estamos cuidando de tudo.</p>
<ul>{{range .Items}}<li>{{.Quantity}}x {{.Title}} - {{.LineTotal}}</li>{{end}}</ul>
<p>Total: <strong>{{.Total}}</strong></p>
<p>Assim que o pagamento for confirmado, enviaremos outro email liberando seus downloads.</p>
<p>Obrigada por apoiar o trabalho criativo! 💖</p>
`

type emailItem struct {
	Quantity  int
	Title     string
	LineTotal string
}

func emailItems(items model.OrderItemList) []emailItem {
	out := make([]emailItem, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		out = append(out, emailItem{
			Quantity:  qty,
			Title:     item.Title,
			LineTotal: FormatBRL(item.Price * float64(qty)),
		})
	}
	return out
}

// SendOrderConfirmationEmail envia confirmação do pedido (async, best-effort)
func SendOrderConfirmationEmail(order model.Order) {
	if order.CustomerEmail == nil || *order.CustomerEmail == "" {
		return
	}
	to := *order.CustomerEmail
	go func() {
		body, err := renderTemplate(orderConfirmationTemplate, map[string]any{
			"CustomerName": order.CustomerName,
			"OrderNumber":  order.OrderNumber,
			"Items":        emailItems(order.Items),
			"Total":        FormatBRL(order.Total),
		})
		if err != nil {
			log.Printf("Falha ao renderizar email do pedido %s: %v", order.OrderNumber, err)
			return
		}
		sendMail(to, fmt.Sprintf("Recebemos seu pedido #%s", order.OrderNumber), body)
	}()
}

const paymentConfirmationTemplate = `
<p>Olá {{.CustomerName}},</p>
<p>Recebemos o pagamento do pedido <strong>#{{.OrderNumber}}</strong>. Seus produtos digitais já estão liberados para download.</p>
<p>Acesse a área "Meus Downloads" no site e faça o login com {{.Email}}.</p>
<p>Total pago: <strong>{{.Total}}</strong></p>
<p>Qualquer dúvida é só responder este email.</p>
<p>Bom proveito! ✨</p>
`

// SendPaymentConfirmationEmail avisa que o pagamento foi aprovado e os
// downloads estão liberados (async, best-effort)
func SendPaymentConfirmationEmail(order model.Order) {
	if order.CustomerEmail == nil || *order.CustomerEmail == "" {
		return
	}
	to := *order.CustomerEmail
	go func() {
		body, err := renderTemplate(paymentConfirmationTemplate, map[string]any{
			"CustomerName": order.CustomerName,
			"OrderNumber":  order.OrderNumber,
			"Email":        to,
			"Total":        FormatBRL(order.Total),
		})
		if err != nil {
			log.Printf("Falha ao renderizar email de pagamento do pedido %s: %v", order.OrderNumber, err)
			return
		}
		sendMail(to, fmt.Sprintf("Pagamento confirmado – Pedido #%s", order.OrderNumber), body)
	}()
}

const passwordResetTemplate = `
<p>Olá {{.FirstName}},</p>
<p>Recebemos um pedido para redefinir sua senha. Use o código abaixo no site para continuar:</p>
<p style="font-size: 20px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
<p>Este código expira em {{.Minutes}} minutos. Se você não solicitou, pode ignorar este email.</p>
<p>Equipe Criatividade e Amor</p>
`

// SendPasswordResetEmail envia o código de redefinição de senha (async)
func SendPasswordResetEmail(name, email, code string, minutes int) {
	go func() {
		firstName := strings.SplitN(name, " ", 2)[0]
		if firstName == "" {
			firstName = "cliente"
		}
		body, err := renderTemplate(passwordResetTemplate, map[string]any{
			"FirstName": firstName,
			"Code":      code,
			"Minutes":   minutes,
		})
		if err != nil {
			log.Printf("Falha ao renderizar email de redefinição de senha: %v", err)
			return
		}
		sendMail(email, "Código para redefinir sua senha", body)
	}()
}
