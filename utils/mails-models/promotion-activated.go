package mailsmodels

import (
	"fmt"
	"telegroups-backend/utils"
	"time"
)

type PromotionActivatedData struct {
	FullName  string
	Email     string
	GroupName string
	PlanName  string
	EndDate   time.Time
}

// PromotionActivated notifie le propriétaire que sa promotion est active
func PromotionActivated(data PromotionActivatedData) {
	subject := "Subject: Votre promotion est active - Telegroups \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #2AABEE; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%; min-height: 300px; border-radius: 10px;">
			<tbody>
				<tr>
					<td style="padding: 20px;">
						<h1 style="text-align:center; color: #333; margin-bottom: 30px;">Votre promotion est active</h1>

						<div style="text-align:center; margin-bottom: 30px;">
							<p style="font-size: 16px; color: #444;">Bonjour %s,</p>
							<p style="font-size: 16px; color: #444;">Le paiement de votre promotion (%s) pour le groupe %s a bien été reçu.</p>
							<p style="font-size: 16px; color: #444;">Votre groupe est mis en avant dans le répertoire jusqu'au %s.</p>
						</div>

						<div style="text-align:center; margin-bottom: 20px;">
							<p style="font-size: 16px; color: #444; margin-top: 30px;">L'équipe Telegroups</p>
						</div>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, data.FullName, data.PlanName, data.GroupName, data.EndDate.Format("02/01/2006"))

	message := []byte(subject + mime + body)
	utils.SendMail(data.Email, message)
}
