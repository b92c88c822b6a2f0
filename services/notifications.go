package services

import (
	"encoding/json"
	"fmt"
	"log"

	"halisaha-server/models"
	"halisaha-server/storage"
	"halisaha-server/utils"
)

// NotificationService persists in-app notifications and fans out push
// messages. Delivery is best-effort: a failed insert or push is logged and
// never rolls back the domain write that triggered it.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// Notify writes the in-app notification row and pushes to the user's devices.
func (ns *NotificationService) Notify(userID uint, notifType, title, message, refType string, refID uint, data map[string]string) {
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		RefType: refType,
		RefID:   refID,
	}
	if data != nil {
		if payload, err := json.Marshal(data); err == nil {
			notification.Data = payload
		}
	}
	if err := storage.DB.Create(&notification).Error; err != nil {
		log.Printf("failed to persist notification for user %d: %v", userID, err)
		return
	}

	go ns.sendPushToUser(userID, title, message, data)
}

func (ns *NotificationService) sendPushToUser(userID uint, title, body string, data map[string]string) {
	tokens, err := ns.getUserPushTokens(userID)
	if err != nil {
		return
	}

	for _, token := range tokens {
		if err := utils.SendNotification(token, title, body, data); err != nil {
			log.Printf("failed to send push to token %s: %v", token, err)
		}
	}
}

func (ns *NotificationService) getUserPushTokens(userID uint) ([]string, error) {
	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %v", err)
	}

	if user.AllowsNotifications == nil || !*user.AllowsNotifications || user.PushTokens == nil {
		return nil, fmt.Errorf("user has notifications disabled or no tokens")
	}

	var tokens []string
	if err := json.Unmarshal(user.PushTokens, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal push tokens: %v", err)
	}

	return tokens, nil
}

// SendTeamInviteNotification notifies the invitee about a pending invitation.
func (ns *NotificationService) SendTeamInviteNotification(invitationID, inviteeID uint, teamName, inviterName string) {
	ns.Notify(inviteeID,
		"team_invitation",
		"Takım Daveti",
		fmt.Sprintf("%s seni %s takımına davet etti", inviterName, teamName),
		"team_invitation", invitationID,
		map[string]string{"invitationId": fmt.Sprintf("%d", invitationID)})
}

// SendInviteResponseNotification notifies the inviter about accept/reject.
func (ns *NotificationService) SendInviteResponseNotification(invitationID, inviterID uint, inviteeName, teamName, status string) {
	title := "Davet Reddedildi"
	message := fmt.Sprintf("%s, %s takımına katılma davetini reddetti", inviteeName, teamName)
	if status == "accepted" {
		title = "Davet Kabul Edildi"
		message = fmt.Sprintf("%s, %s takımına katıldı", inviteeName, teamName)
	}
	ns.Notify(inviterID, "team_invitation_response", title, message,
		"team_invitation", invitationID,
		map[string]string{"status": status})
}

// SendMatchProposalNotification notifies the target team captain about a new proposal.
func (ns *NotificationService) SendMatchProposalNotification(proposalID, captainID uint, proposingTeamName, date string) {
	ns.Notify(captainID,
		"match_proposal",
		"Yeni Maç Teklifi",
		fmt.Sprintf("%s takımı %s tarihi için maç teklif etti", proposingTeamName, date),
		"match_proposal", proposalID,
		map[string]string{"proposalId": fmt.Sprintf("%d", proposalID)})
}

// SendProposalResponseNotification notifies the proposing side about the answer.
func (ns *NotificationService) SendProposalResponseNotification(proposalID, proposerID uint, targetTeamName, status string) {
	title := "Maç Teklifi Reddedildi"
	message := fmt.Sprintf("%s takımı maç teklifini reddetti", targetTeamName)
	if status == "accepted" {
		title = "Maç Teklifi Kabul Edildi"
		message = fmt.Sprintf("%s takımı maç teklifini kabul etti", targetTeamName)
	}
	ns.Notify(proposerID, "match_proposal_response", title, message,
		"match_proposal", proposalID,
		map[string]string{"status": status})
}

// SendJoinRequestNotification notifies the organizer of a player-search listing.
func (ns *NotificationService) SendJoinRequestNotification(listingID, organizerID uint, requesterName string) {
	ns.Notify(organizerID,
		"player_search_request",
		"Yeni Katılım İsteği",
		fmt.Sprintf("%s maçına katılmak istiyor", requesterName),
		"player_search", listingID,
		map[string]string{"listingId": fmt.Sprintf("%d", listingID)})
}

// SendJoinResponseNotification notifies an applicant about accept/reject.
func (ns *NotificationService) SendJoinResponseNotification(listingID, applicantID uint, status string) {
	title := "Katılım İsteği Reddedildi"
	message := "Maça katılım isteğin reddedildi"
	if status == "accepted" {
		title = "Katılım İsteği Kabul Edildi"
		message = "Maça katılım isteğin kabul edildi, kadrodasın"
	}
	ns.Notify(applicantID, "player_search_response", title, message,
		"player_search", listingID,
		map[string]string{"status": status})
}

// SendReservationCreatedNotification confirms a booking to the booker.
func (ns *NotificationService) SendReservationCreatedNotification(reservationID, userID uint, venueName, date, startTime string) {
	ns.Notify(userID,
		"reservation_created",
		"Rezervasyon Alındı",
		fmt.Sprintf("%s için %s %s rezervasyonun oluşturuldu", venueName, date, startTime),
		"reservation", reservationID,
		map[string]string{"reservationId": fmt.Sprintf("%d", reservationID)})
}
