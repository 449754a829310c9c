package email

import (
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faqdesk/internal/domain/notify"
)

func TestChannel_Compose(t *testing.T) {
	ch := New(Config{Host: "smtp.example.com", From: "bot@example.com", To: []string{"sales@example.com", "ops@example.com"}})

	raw, err := ch.compose(notify.Notification{
		Subject: "Новая заявка APP-1",
		Body:    "**Имя:** Иван\n**Телефон:** +7 900",
	}, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	require.NoError(t, err)

	msg, err := mail.ReadMessage(strings.NewReader(string(raw)))
	require.NoError(t, err)
	require.Equal(t, "sales@example.com, ops@example.com", msg.Header.Get("To"))

	subject, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	require.NoError(t, err)
	require.Equal(t, "Новая заявка APP-1", subject)

	mediaType, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	require.NoError(t, err)
	require.Equal(t, "multipart/alternative", mediaType)

	reader := multipart.NewReader(msg.Body, params["boundary"])
	var parts []string
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		parts = append(parts, part.Header.Get("Content-Type")+"|"+string(content))
	}
	require.Len(t, parts, 2)
	require.Contains(t, parts[0], "text/plain")
	require.Contains(t, parts[0], "**Имя:** Иван")
	require.Contains(t, parts[1], "text/html")
	require.Contains(t, parts[1], "<strong>Имя:</strong> Иван<br>")
}
