package services

import (
	"context"
	"fmt"
	"pos_backend/pkg/models"
	"pos_backend/pkg/store"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"
)

var fcmClient *messaging.Client

// InitFCM initializes Firebase Cloud Messaging
func InitFCM(credentialsFile string) error {
	ctx := context.Background()

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize FCM client: %v", err)
	}

	fcmClient = client
	return nil
}

// ReadyNotifier pushes a message to the floor-staff topic when an order
// becomes READY.
type ReadyNotifier struct {
	Topic string
	// TableLabel resolves a table id for the notification body.
	TableLabel func(tableID string) string
}

// Publish implements store.EventSink.
func (n ReadyNotifier) Publish(ctx context.Context, event store.OrderEvent) error {
	msg, ok := n.readyMessage(event)
	if !ok || fcmClient == nil {
		return nil
	}
	if _, err := fcmClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send ready notification: %v", err)
	}
	return nil
}

func (n ReadyNotifier) readyMessage(event store.OrderEvent) (*messaging.Message, bool) {
	if event.Kind != store.EventOrderStatusChanged || event.Order.Status != models.OrderStatusReady {
		return nil, false
	}

	o := event.Order
	where := "Takeaway"
	if !o.IsTakeaway() && n.TableLabel != nil {
		where = n.TableLabel(o.TableID)
	}
	number := o.ID
	if len(number) > 8 {
		number = number[:8]
	}

	return &messaging.Message{
		Topic: n.Topic,
		Notification: &messaging.Notification{
			Title: "Order ready",
			Body:  fmt.Sprintf("%s: order #%s is ready to serve", where, number),
		},
		Data: map[string]string{
			"orderId": o.ID,
			"tableId": o.TableID,
			"status":  string(o.Status),
		},
	}, true
}

// GetServiceStatus returns the connection status of the optional integrations
func GetServiceStatus() map[string]interface{} {
	return map[string]interface{}{
		"fcm":     statusText(fcmClient != nil),
		"storage": statusText(storageClient != nil),
	}
}

func statusText(ok bool) string {
	if ok {
		return "connected"
	}
	return "not initialized"
}
