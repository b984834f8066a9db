package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "pokedex-bot/internal/application"
	"pokedex-bot/internal/domain/entity"
	"pokedex-bot/internal/presenter"
)

const (
	msgStart = "👋 Привет! Я AI Pokédex: пришлите фото покемона, и я расскажу о нём.\n\n" + presenter.HelpText

	msgCaptured        = "📸 Фото получено. Отправьте /analyze, чтобы распознать покемона."
	msgAnalyzing       = "⏳ Распознаю покемона..."
	msgNoImage         = "📸 Сначала отправьте фото покемона."
	msgReset           = "🔄 Начнём заново. Отправьте фото покемона."
	msgSendPhoto       = "📸 Пожалуйста, отправьте фото покемона."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgNotConfigured   = "⚠️ Ошибка: не задан OPENAI_API_KEY."
	msgProcessingError = "⚠️ Не удалось обработать изображение. Попробуйте ещё раз."

	// Telegram ограничивает подпись к фото
	maxCaptionLength = 1024
)

// Bot представляет Telegram-бота
type Bot struct {
	api        *tgbotapi.BotAPI
	pokedex    *app.PokedexService
	httpClient *http.Client
}

// NewBot создаёт нового бота
func NewBot(token string, pokedex *app.PokedexService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.WithField("account", api.Self.UserName).Info("authorized on telegram")

	return &Bot{
		api:        api,
		pokedex:    pokedex,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	sessionID := strconv.FormatInt(msg.From.ID, 10)

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, sessionID)
		return
	}

	// Обработка фото
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg, sessionID)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, sessionID string) {
	switch msg.Command() {
	case "start", "help":
		b.sendMessage(msg.Chat.ID, msgStart)

	case "analyze":
		b.analyze(ctx, msg.Chat.ID, sessionID)

	case "reset", "cancel":
		if _, err := b.pokedex.Reset(ctx, sessionID); err != nil {
			log.WithError(err).WithField("session", sessionID).Error("reset failed")
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
		b.sendMessage(msg.Chat.ID, msgReset)

	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handlePhoto сохраняет фото как снимок сессии
func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message, sessionID string) {
	// Берём файл с максимальным разрешением
	photo := msg.Photo[len(msg.Photo)-1]

	imageData, err := b.downloadFile(ctx, photo.FileID)
	if err != nil {
		log.WithError(err).WithField("session", sessionID).Error("downloading photo failed")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	session, err := b.pokedex.Session(ctx, sessionID)
	if err != nil {
		log.WithError(err).WithField("session", sessionID).Error("getting session failed")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}
	// Новое фото после результата начинает сценарий заново
	if session.State.Finished() {
		if _, err := b.pokedex.Reset(ctx, sessionID); err != nil {
			log.WithError(err).WithField("session", sessionID).Error("reset failed")
			b.sendMessage(msg.Chat.ID, msgProcessingError)
			return
		}
	}

	if _, err := b.pokedex.Capture(ctx, sessionID, imageData); err != nil {
		log.WithError(err).WithField("session", sessionID).Warn("capture rejected")
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	if strings.HasPrefix(strings.TrimSpace(msg.Caption), "/analyze") {
		b.analyze(ctx, msg.Chat.ID, sessionID)
		return
	}
	b.sendMessage(msg.Chat.ID, msgCaptured)
}

// analyze запускает распознавание и отправляет результат
func (b *Bot) analyze(ctx context.Context, chatID int64, sessionID string) {
	b.sendMessage(chatID, msgAnalyzing)
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.WithError(err).Debug("sending chat action failed")
	}

	out, err := b.pokedex.Analyze(ctx, sessionID)
	text, spriteURL := resultMessage(out, err)

	if spriteURL != "" && len([]rune(text)) <= maxCaptionLength {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(spriteURL))
		photo.Caption = text
		_, err := b.api.Send(photo)
		if err == nil {
			return
		}
		log.WithError(err).WithField("sprite", spriteURL).Warn("sending sprite failed")
	}
	b.sendMessage(chatID, text)
}

// resultMessage выбирает ответ пользователю по итогу анализа.
// Причины отрицательного результата пользователю не раскрываются.
func resultMessage(out *app.AnalysisOutput, err error) (text string, spriteURL string) {
	switch {
	case errors.Is(err, entity.ErrConfiguration):
		return msgNotConfigured, ""
	case errors.Is(err, app.ErrNoImage):
		return msgNoImage, ""
	case err != nil:
		return msgProcessingError, ""
	}

	if out == nil || out.Session == nil || out.Session.State != entity.StateFound || out.Session.Record == nil {
		return presenter.NotFoundText + "\n/reset — начать заново", ""
	}

	record := out.Session.Record
	return presenter.Card(record) + "\n/reset — начать заново", record.SpriteURL
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(b.api.Token), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).Error("sending message failed")
	}
}
