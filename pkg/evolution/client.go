package evolution

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

const SendTextEndpoint = "message/sendText"

type client struct {
	baseURL  string
	instance string
	apiKey   string
}

func New(baseURL string, instance string, apiKey string) Client {
	return client{
		baseURL:  baseURL,
		instance: instance,
		apiKey:   apiKey,
	}
}

type sendTextDto struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

type SendTextResponse struct {
	Key       MessageKey `json:"key"`
	Status    string     `json:"status"`
	Timestamp any        `json:"messageTimestamp"`
}

type MessageKey struct {
	RemoteJid string `json:"remoteJid"`
	FromMe    bool   `json:"fromMe"`
	ID        string `json:"id"`
}

func (client client) SendText(
	ctx context.Context,
	number string,
	text string,
) (*SendTextResponse, error) {
	endpoint := fmt.Sprintf("%s/%s", SendTextEndpoint, url.PathEscape(client.instance))

	var response SendTextResponse
	err := client.sendRequest(
		ctx,
		http.MethodPost,
		endpoint,
		sendTextDto{Number: number, Text: text},
		&response,
	)
	if err != nil {
		return nil, err
	}

	return &response, nil
}

func (client client) sendRequest(
	ctx context.Context,
	method string,
	endpoint string,
	body any,
	dst any,
) error {
	u, err := url.Parse(fmt.Sprintf("%s/%s", client.baseURL, endpoint))
	if err != nil {
		return err
	}

	marshalled, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		method,
		u.String(),
		bytes.NewBuffer(marshalled),
	)
	if err != nil {
		return err
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("apikey", client.apiKey)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("evolution api returned %s", res.Status)
	}

	return httptools.ReadJSON(res.Body, dst)
}
