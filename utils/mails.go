package utils

import (
	"net/smtp"
	"os"
)

func SendMail(email string, message []byte) {
	from := "telegroups.directory@gmail.com"
	password := os.Getenv("GOOGLE_SMTP_MDP")
	to := email

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"
	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
	if err != nil {
		LogError(err, "Erreur lors de l'envoi de l'email")
		return
	}

	LogInfo("Email envoyé avec succès")
}
