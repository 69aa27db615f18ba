// Package push delivers queued messages to devices through an FCM-style
// push gateway, retrying failed sends with exponential backoff
// (crates/push-notifications-sender/src/main.rs).
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/wavesplatform/push-notifications/internal/apperr"
)

const fcmSendURL = "https://fcm.googleapis.com/fcm/send"

// notification is the title/body/click_action block of an FCM message.
type notification struct {
	Title       string `json:"title"`
	Body        string `json:"body"`
	ClickAction string `json:"click_action"`
}

// fcmMessage is the request body FCM's legacy HTTP API expects.
type fcmMessage struct {
	To           string          `json:"to"`
	Notification notification    `json:"notification"`
	Data         json.RawMessage `json:"data"`
	CollapseKey  string          `json:"collapse_key,omitempty"`
}

// Gateway sends one message at a time to the push gateway.
type Gateway struct {
	httpClient  *http.Client
	apiKey      string
	clickAction string
	dryRun      bool
}

// NewGateway builds a Gateway. In dry-run mode Send never calls the network
// and reports success instead — used to exercise the delivery loop without
// an FCM credential.
func NewGateway(apiKey, clickAction string, dryRun bool) *Gateway {
	return &Gateway{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		apiKey:      apiKey,
		clickAction: clickAction,
		dryRun:      dryRun,
	}
}

// Send delivers one queued message. An empty data payload is sent as "{}"
// rather than omitted: the gateway's client apps always expect a data
// object.
func (g *Gateway) Send(ctx context.Context, to string, title, body string, data []byte) error {
	if g.dryRun {
		return nil
	}

	if len(data) == 0 {
		data = []byte("{}")
	}

	msg := fcmMessage{
		To: to,
		Notification: notification{
			Title:       title,
			Body:        body,
			ClickAction: g.clickAction,
		},
		Data: data,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return apperr.NewFatal("encode fcm message", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fcmSendURL, bytes.NewReader(payload))
	if err != nil {
		return apperr.NewFatal("build fcm request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return apperr.NewTransient("send fcm message", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return apperr.NewTransient("send fcm message", fmt.Errorf("fcm returned status %d", resp.StatusCode))
	}
	if resp.StatusCode >= 400 {
		return apperr.NewFatal("send fcm message", fmt.Errorf("fcm returned status %d", resp.StatusCode))
	}
	return nil
}
