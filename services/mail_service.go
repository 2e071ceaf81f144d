package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"time"
)

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// Ограничение на установку соединения: зависшее реле не должно
	// держать запрос бесконечно.
	smtpDialTimeout = 15 * time.Second
)

// OutgoingMail — одно письмо с вложением, готовое к отправке.
type OutgoingMail struct {
	To         string
	Subject    string
	Body       string
	Filename   string
	Attachment []byte
}

type Mailer interface {
	Send(ctx context.Context, mail OutgoingMail) error
}

type SMTPMailerConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

type SMTPMailer struct {
	cfg SMTPMailerConfig
}

func NewSMTPMailer(cfg SMTPMailerConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send доставляет письмо через настроенное реле. Одна попытка, без
// повторов; ошибка транспорта возвращается вызывающему.
func (s *SMTPMailer) Send(ctx context.Context, mail OutgoingMail) error {
	msg, err := buildMessage(s.cfg.From, mail)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsconfig := &tls.Config{ServerName: s.cfg.Host}
	dialer := &net.Dialer{Timeout: smtpDialTimeout}

	var client *smtp.Client
	if s.cfg.Port == 465 {
		// Прямое TLS-соединение (обычно порт 465)
		conn, err := (&tls.Dialer{NetDialer: dialer, Config: tlsconfig}).DialContext(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("ошибка TLS соединения: %w", err)
		}
		client, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return fmt.Errorf("ошибка создания SMTP клиента: %w", err)
		}
	} else {
		// STARTTLS (обычно порт 587)
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return fmt.Errorf("ошибка соединения SMTP: %w", err)
		}
		client, err = smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			conn.Close()
			return fmt.Errorf("ошибка создания SMTP клиента: %w", err)
		}
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("ошибка команды STARTTLS: %w", err)
		}
	}
	defer client.Quit()

	if s.cfg.User != "" {
		auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("ошибка аутентификации SMTP: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("ошибка MAIL FROM: %w", err)
	}
	if err := client.Rcpt(mail.To); err != nil {
		return fmt.Errorf("ошибка RCPT TO: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("ошибка команды DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("ошибка записи тела письма: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("ошибка завершения DATA: %w", err)
	}
	return nil
}

// buildMessage собирает multipart/mixed письмо: текстовая часть в UTF-8
// и вложение DOCX в base64. Заголовки с кириллицей кодируются по RFC 2047.
func buildMessage(from string, mail OutgoingMail) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", mail.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", mail.Subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n", mw.Boundary())
	buf.WriteString("\r\n")

	textPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {`text/plain; charset="UTF-8"`},
		"Content-Transfer-Encoding": {"8bit"},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки текстовой части: %w", err)
	}
	if _, err := textPart.Write([]byte(mail.Body)); err != nil {
		return nil, fmt.Errorf("ошибка записи текстовой части: %w", err)
	}

	encodedName := mime.QEncoding.Encode("utf-8", mail.Filename)
	attachPart, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {fmt.Sprintf("%s; name=%q", docxContentType, encodedName)},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", encodedName)},
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки вложения: %w", err)
	}
	if err := writeBase64(attachPart, mail.Attachment); err != nil {
		return nil, fmt.Errorf("ошибка записи вложения: %w", err)
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("ошибка завершения письма: %w", err)
	}
	return buf.Bytes(), nil
}

// writeBase64 кодирует данные с переносом строк по 76 символов.
func writeBase64(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := 76
		if len(encoded) < n {
			n = len(encoded)
		}
		if _, err := fmt.Fprintf(w, "%s\r\n", encoded[:n]); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
