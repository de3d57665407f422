package services

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/ascend-app/ascend-api/internal/database"
	"github.com/ascend-app/ascend-api/internal/models"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// PushService delivers social notifications via Firebase Cloud Messaging.
type PushService struct {
	client *messaging.Client
}

var Push = &PushService{}

// InitPush sets up FCM. Runs without push when no service account is
// configured.
func InitPush(serviceAccountPath string) error {
	if serviceAccountPath == "" {
		log.Println("FCM: no service account configured, push disabled")
		return nil
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		log.Printf("FCM: failed to initialize app: %v", err)
		return nil
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("FCM: failed to get messaging client: %v", err)
		return nil
	}

	Push.client = client
	log.Println("FCM: push notifications enabled")
	return nil
}

// SendToUser pushes to one user. No-op without a configured client or a
// registered device token.
func (p *PushService) SendToUser(userID uuid.UUID, title, body string, data map[string]string) {
	if p.client == nil {
		return
	}

	var user models.User
	if err := database.DB.Select("fcm_token").First(&user, userID).Error; err != nil {
		return
	}
	if user.FCMToken == "" {
		return
	}

	msg := &messaging.Message{
		Token: user.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	if len(data) > 0 {
		msg.Data = data
	}

	if _, err := p.client.Send(context.Background(), msg); err != nil {
		log.Printf("FCM: failed to send to user %s: %v", userID, err)
	}
}
