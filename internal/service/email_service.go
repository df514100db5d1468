package service

import (
	"crypto/tls"
	"fmt"
	"time"

	"blog-backend/config"
	"blog-backend/internal/util"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// EmailService 负责发送通知邮件。发送全部异步、尽力而为，
// 失败只记录日志，不影响触发它的请求。
type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
}

// NewEmailService 创建一个新的 EmailService 实例
func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost: config.AppConfig.SMTPHost,
		smtpPort: config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
	}
}

// SendWelcomeEmail 注册成功后发送欢迎邮件
func (s *EmailService) SendWelcomeEmail(email, username string) {
	subject := "欢迎加入"
	body := fmt.Sprintf("亲爱的 %s，<br><br>欢迎加入我们的博客平台！现在就去发布你的第一篇帖子吧：<br>%s",
		username, config.AppConfig.FrontendURL)

	s.sendEmailAsync(email, subject, body)
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	if s.username == "" || s.password == "" {
		util.Logger.Debug("SMTP 未配置，跳过邮件发送", zap.String("to", to))
		return
	}

	go func() {
		if err := s.sendEmail(to, subject, body); err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{ServerName: s.smtpHost}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to), zap.String("subject", subject))
	return nil
}
