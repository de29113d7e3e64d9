// Package payment реализует создание, чтение и подтверждение платежей.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/pis-contract/internal/cache"
	"github.com/magabrotheeeer/pis-contract/internal/lib/amount"
	"github.com/magabrotheeeer/pis-contract/internal/lib/sl"
	"github.com/magabrotheeeer/pis-contract/internal/models"
	"github.com/magabrotheeeer/pis-contract/internal/storage"
)

var (
	// ErrPaymentNotFound платёж не существует, id некорректен или платёж принадлежит другому клиенту.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrInvalidConfirmToken токен подтверждения не подходит к платежу.
	ErrInvalidConfirmToken = errors.New("invalid confirm token")
)

// Repository хранилище платежей.
type Repository interface {
	CreatePayment(ctx context.Context, p *models.Payment) error
	ReadPayment(ctx context.Context, id string) (*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id, bankStatus, statusGroup string) (int, error)
}

// Cache кэш записей платежей. Set перезаписывает ключ, Add пишет только в пустой.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Add(ctx context.Context, key string, value any, expiration time.Duration) (bool, error)
}

// Publisher публикует события платежей.
type Publisher interface {
	PublishPaymentInitiated(ctx context.Context, event models.PaymentInitiatedEvent) error
}

// TokenMaker подписывает и проверяет токены ссылок подтверждения.
type TokenMaker interface {
	GenerateToken(paymentID string) (string, error)
	ParseToken(tokenStr, paymentID string) error
}

// Recorder учитывает созданные платежи в метриках.
type Recorder interface {
	IncInitiated(currency string)
}

// Option настраивает необязательные зависимости сервиса.
type Option func(*Service)

// WithCache включает read-through кэш записей.
func WithCache(c Cache, ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = c
		s.cacheTTL = ttl
	}
}

// WithPublisher включает публикацию событий.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		s.publisher = p
	}
}

// WithRecorder включает учёт метрик.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		s.recorder = r
	}
}

// Service сервис платежей.
type Service struct {
	repo      Repository
	tokens    TokenMaker
	publicURL string
	log       *slog.Logger

	cache     Cache
	cacheTTL  time.Duration
	publisher Publisher
	recorder  Recorder
	now       func() time.Time
}

// New создаёт Service. publicURL используется как основа ссылок подтверждения.
func New(repo Repository, tokens TokenMaker, publicURL string, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		tokens:    tokens,
		publicURL: strings.TrimRight(publicURL, "/"),
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initiate создаёт платёж в статусе STRD и возвращает сохранённую запись.
func (s *Service) Initiate(ctx context.Context, clientID string, in models.Initiation) (*models.Payment, error) {
	const op = "services.payment.Initiate"

	id := uuid.NewString()
	log := s.log.With(slog.String("op", op), sl.Client(clientID), sl.Payment(id))

	token, err := s.tokens.GenerateToken(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	p := &models.Payment{
		ID:                id,
		ClientID:          clientID,
		Amount:            in.Amount,
		CurrencyCode:      in.CurrencyCode,
		Description:       in.Description,
		BankPaymentMethod: in.BankPaymentMethod,
		BankStatus:        models.BankStatusStarted,
		StatusGroup:       models.StatusGroupStarted,
		ConfirmLink:       s.confirmLink(id, token),
		RedirectURL:       in.RedirectURL,
		PSUDeviceID:       in.PSUDeviceID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err = s.repo.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("payment initiated")

	s.cachePayment(ctx, log, p)

	if s.publisher != nil {
		event := models.PaymentInitiatedEvent{
			ID:           p.ID,
			ClientID:     p.ClientID,
			Amount:       amount.Format(p.Amount),
			CurrencyCode: p.CurrencyCode,
			EndToEndID:   p.BankPaymentMethod.EndToEndID,
			CreatedAt:    p.CreatedAt,
		}
		if err = s.publisher.PublishPaymentInitiated(ctx, event); err != nil {
			log.Warn("failed to publish payment event", sl.Err(err))
		}
	}
	if s.recorder != nil {
		s.recorder.IncInitiated(p.CurrencyCode)
	}
	return p, nil
}

// Read возвращает платёж клиента. Чужой, несуществующий и некорректный id неразличимы.
func (s *Service) Read(ctx context.Context, clientID, id string) (*models.Payment, error) {
	const op = "services.payment.Read"
	log := s.log.With(slog.String("op", op), sl.Client(clientID), sl.Payment(id))

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPaymentNotFound
	}

	if s.cache != nil {
		var cached models.Payment
		found, err := s.cache.Get(ctx, cache.PaymentKey(id), &cached)
		if err != nil {
			log.Warn("cache read failed", sl.Err(err))
		}
		if found {
			if cached.ClientID != clientID {
				return nil, ErrPaymentNotFound
			}
			log.Debug("payment served from cache")
			return &cached, nil
		}
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if p.ClientID != clientID {
		log.Debug("payment belongs to another client")
		return nil, ErrPaymentNotFound
	}
	s.fillCache(ctx, log, p)
	return p, nil
}

// Confirm проверяет токен ссылки подтверждения и переводит платёж в ACTC.
// Повторное подтверждение возвращает уже подтверждённый платёж.
func (s *Service) Confirm(ctx context.Context, id, token string) (*models.Payment, error) {
	const op = "services.payment.Confirm"
	log := s.log.With(slog.String("op", op), sl.Payment(id))

	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPaymentNotFound
	}
	if err := s.tokens.ParseToken(token, id); err != nil {
		log.Debug("confirm token rejected", sl.Err(err))
		return nil, ErrInvalidConfirmToken
	}

	p, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if p.BankStatus == models.BankStatusAccepted {
		return p, nil
	}

	n, err := s.repo.UpdatePaymentStatus(ctx, id, models.BankStatusAccepted, models.StatusGroupPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return nil, ErrPaymentNotFound
	}
	p.BankStatus = models.BankStatusAccepted
	p.StatusGroup = models.StatusGroupPending
	p.UpdatedAt = s.now().UTC()

	s.cachePayment(ctx, log, p)
	log.Info("payment confirmed")
	return p, nil
}

// RedirectTarget возвращает адрес возврата плательщика с добавленным paymentId.
func RedirectTarget(p *models.Payment) (string, error) {
	u, err := url.Parse(p.RedirectURL)
	if err != nil {
		return "", fmt.Errorf("services.payment.RedirectTarget: %w", err)
	}
	q := u.Query()
	q.Set("paymentId", p.ID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Service) load(ctx context.Context, id string) (*models.Payment, error) {
	p, err := s.repo.ReadPayment(ctx, id)
	if errors.Is(err, storage.ErrPaymentNotFound) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// cachePayment записывает актуальную запись поверх кэша.
func (s *Service) cachePayment(ctx context.Context, log *slog.Logger, p *models.Payment) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.PaymentKey(p.ID), p, s.cacheTTL); err != nil {
		log.Warn("cache write failed", sl.Err(err))
	}
}

// fillCache кладёт прочитанную из хранилища запись, только если ключ пуст.
// Запись, прочитанная до Confirm, не перетирает уже записанный ACTC.
func (s *Service) fillCache(ctx context.Context, log *slog.Logger, p *models.Payment) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Add(ctx, cache.PaymentKey(p.ID), p, s.cacheTTL); err != nil {
		log.Warn("cache fill failed", sl.Err(err))
	}
}

func (s *Service) confirmLink(id, token string) string {
	return s.publicURL + "/pis/payment/" + id + "/confirm?token=" + url.QueryEscape(token)
}
