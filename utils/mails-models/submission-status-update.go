package mailsmodels

import (
	"fmt"
	"telegroups-backend/models"
	"telegroups-backend/utils"
)

type SubmissionStatusUpdateData struct {
	FullName        string
	Email           string
	GroupName       string
	Status          models.SubmissionStatusType
	RejectionReason string
}

func getStatusLabel(status models.SubmissionStatusType) string {
	switch status {
	case models.SubmissionStatusPending:
		return "En attente"
	case models.SubmissionStatusApproved:
		return "Approuvée"
	case models.SubmissionStatusRejected:
		return "Rejetée"
	default:
		return string(status)
	}
}

// SubmissionStatusUpdate notifie le propriétaire d'une décision de modération
func SubmissionStatusUpdate(data SubmissionStatusUpdateData) {
	statusLabel := getStatusLabel(data.Status)

	subject := "Subject: Mise à jour du statut de votre groupe - Telegroups \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #2AABEE; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%; min-height: 300px; border-radius: 10px;">
			<tbody>
				<tr>
					<td style="padding: 20px;">
						<h1 style="text-align:center; color: #333; margin-bottom: 30px;">Mise à jour du statut de votre groupe</h1>

						<div style="text-align:center; margin-bottom: 30px;">
							<p style="font-size: 16px; color: #444;">Bonjour %s,</p>
							<p style="font-size: 16px; color: #444;">Le statut de votre groupe %s a été mis à jour.</p>
						</div>

						<div style="text-align:center; margin-bottom: 20px;">
							<p style="font-size: 18px; color: #444; font-weight: bold;">Nouveau statut : %s</p>
						</div>

						<div style="text-align:center; margin-bottom: 20px;">
							%s
						</div>

						<div style="text-align:center; margin-bottom: 20px;">
							<p style="font-size: 16px; color: #444; margin-top: 30px;">L'équipe Telegroups</p>
						</div>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, data.FullName, data.GroupName, statusLabel, getStatusMessage(data))

	message := []byte(subject + mime + body)
	utils.SendMail(data.Email, message)
}

func getStatusMessage(data SubmissionStatusUpdateData) string {
	switch data.Status {
	case models.SubmissionStatusApproved:
		return `<p style="font-size: 16px; color: #444;">Félicitations ! Votre groupe a été approuvé et est maintenant visible dans le répertoire.</p>`
	case models.SubmissionStatusRejected:
		return fmt.Sprintf(`<p style="font-size: 16px; color: #444;">Malheureusement, votre soumission a été rejetée. Motif : %s. Vous pouvez corriger votre soumission et la soumettre à nouveau.</p>`, data.RejectionReason)
	default:
		return `<p style="font-size: 16px; color: #444;">Notre équipe examine actuellement votre soumission. Nous vous tiendrons informé de l'avancement.</p>`
	}
}
