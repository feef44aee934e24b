package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
)

// GroupMetadata is the public snapshot of a Telegram group at fetch time.
type GroupMetadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Members     int      `json:"members"`
	Image       string   `json:"image,omitempty"`
	Verified    bool     `json:"verified"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link"`
}

// ErrGroupNotFound is returned when the handle does not resolve to a
// public group or channel.
var ErrGroupNotFound = errors.New("telegram group not found")

type telegramChatResponse struct {
	Ok          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
	Result      *struct {
		Title       string `json:"title"`
		Username    string `json:"username"`
		Description string `json:"description"`
		IsVerified  bool   `json:"is_verified"`
		Photo       *struct {
			BigFileID string `json:"big_file_id"`
		} `json:"photo"`
	} `json:"result"`
}

type telegramCountResponse struct {
	Ok     bool `json:"ok"`
	Result int  `json:"result"`
}

type telegramFileResponse struct {
	Ok     bool `json:"ok"`
	Result *struct {
		FilePath string `json:"file_path"`
	} `json:"result"`
}

var (
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramAPIEnv    = "TELEGRAM_API_URL"
	handleRegex       = regexp.MustCompile(`^[a-zA-Z0-9_]{5,32}$`)
	descriptionHashes = regexp.MustCompile(`#([\p{L}\p{N}_]+)`)
)

func telegramBaseURL() string {
	if base := os.Getenv(telegramAPIEnv); base != "" {
		return base
	}
	return "https://api.telegram.org"
}

// NormalizeGroupHandle strips the @ / t.me prefixes users paste in.
func NormalizeGroupHandle(handle string) string {
	handle = strings.TrimSpace(handle)
	handle = strings.TrimPrefix(handle, "https://t.me/")
	handle = strings.TrimPrefix(handle, "http://t.me/")
	handle = strings.TrimPrefix(handle, "t.me/")
	handle = strings.TrimPrefix(handle, "@")
	return handle
}

// FetchGroupMetadata looks up a public group through the Telegram Bot
// API (getChat + getChatMemberCount). Returns ErrGroupNotFound when the
// handle does not exist, any other error is an upstream failure.
func FetchGroupMetadata(handle string) (*GroupMetadata, error) {
	handle = NormalizeGroupHandle(handle)
	if !handleRegex.MatchString(handle) {
		return nil, ErrGroupNotFound
	}

	token := os.Getenv(telegramTokenEnv)
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required in environment variables")
	}

	var chatResp telegramChatResponse
	if err := callTelegram(token, "getChat", handle, &chatResp); err != nil {
		return nil, err
	}
	if !chatResp.Ok || chatResp.Result == nil {
		if chatResp.ErrorCode == http.StatusBadRequest || chatResp.ErrorCode == http.StatusNotFound {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("telegram API error: code=%d, description=%s", chatResp.ErrorCode, chatResp.Description)
	}

	var countResp telegramCountResponse
	if err := callTelegram(token, "getChatMemberCount", handle, &countResp); err != nil {
		return nil, err
	}

	meta := &GroupMetadata{
		Name:        chatResp.Result.Title,
		Description: chatResp.Result.Description,
		Members:     countResp.Result,
		Verified:    chatResp.Result.IsVerified,
		Tags:        extractHashtags(chatResp.Result.Description),
		Link:        "https://t.me/" + handle,
	}

	if chatResp.Result.Photo != nil && chatResp.Result.Photo.BigFileID != "" {
		// L'image est optionnelle: une erreur ici n'annule pas le fetch
		if imageURL, err := resolveFileURL(token, chatResp.Result.Photo.BigFileID); err == nil {
			meta.Image = imageURL
		} else {
			LogError(err, "Could not resolve the group photo URL")
		}
	}

	return meta, nil
}

func callTelegram(token, method, handle string, out interface{}) error {
	reqURL := fmt.Sprintf("%s/bot%s/%s?chat_id=%s", telegramBaseURL(), token, method, url.QueryEscape("@"+handle))

	resp, err := http.Get(reqURL)
	if err != nil {
		return fmt.Errorf("error calling telegram %s: %v", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading telegram %s response: %v", method, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error decoding telegram %s response: %v", method, err)
	}
	return nil
}

func resolveFileURL(token, fileID string) (string, error) {
	reqURL := fmt.Sprintf("%s/bot%s/getFile?file_id=%s", telegramBaseURL(), token, url.QueryEscape(fileID))

	resp, err := http.Get(reqURL)
	if err != nil {
		return "", fmt.Errorf("error calling telegram getFile: %v", err)
	}
	defer resp.Body.Close()

	var fileResp telegramFileResponse
	if err := json.NewDecoder(resp.Body).Decode(&fileResp); err != nil {
		return "", fmt.Errorf("error decoding telegram getFile response: %v", err)
	}
	if !fileResp.Ok || fileResp.Result == nil {
		return "", fmt.Errorf("telegram getFile failed")
	}

	return fmt.Sprintf("%s/file/bot%s/%s", telegramBaseURL(), token, fileResp.Result.FilePath), nil
}

func extractHashtags(description string) []string {
	matches := descriptionHashes.FindAllStringSubmatch(description, -1)
	tags := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			tags = append(tags, m[1])
		}
	}
	return tags
}
