package event

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DefaultChannel is the pub/sub channel catalog management publishes to
const DefaultChannel = "storefront:catalog:events"

// messageSource is the part of *redis.PubSub the subscriber reads from
type messageSource interface {
	Channel(opts ...redis.ChannelOption) <-chan *redis.Message
	Close() error
}

// RedisSubscriber relays events received on a Redis channel to a publisher
type RedisSubscriber struct {
	subscribe  func(ctx context.Context) (messageSource, error)
	channel    string
	serializer *EventSerializer
	publisher  shared.EventPublisher
	logger     *zap.Logger

	mu     sync.Mutex
	source messageSource
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRedisSubscriber subscribes to channel on client once Start is called.
// An empty channel uses DefaultChannel.
func NewRedisSubscriber(client redis.UniversalClient, channel string, serializer *EventSerializer, publisher shared.EventPublisher, logger *zap.Logger) *RedisSubscriber {
	if channel == "" {
		channel = DefaultChannel
	}
	subscribe := func(ctx context.Context) (messageSource, error) {
		ps := client.Subscribe(ctx, channel)
		// Wait for the subscription confirmation so Start fails fast
		if _, err := ps.Receive(ctx); err != nil {
			_ = ps.Close()
			return nil, err
		}
		return ps, nil
	}
	return newRedisSubscriber(subscribe, channel, serializer, publisher, logger)
}

func newRedisSubscriber(subscribe func(ctx context.Context) (messageSource, error), channel string, serializer *EventSerializer, publisher shared.EventPublisher, logger *zap.Logger) *RedisSubscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSubscriber{
		subscribe:  subscribe,
		channel:    channel,
		serializer: serializer,
		publisher:  publisher,
		logger:     logger,
	}
}

// Start subscribes within ctx's deadline and relays messages in the
// background until Stop
func (s *RedisSubscriber) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done != nil {
		return errors.New("subscriber already started")
	}

	source, err := s.subscribe(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.channel, err)
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.source = source
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(runCtx, source.Channel(), s.done)

	s.logger.Info("catalog event subscriber started", zap.String("channel", s.channel))
	return nil
}

// Stop closes the subscription and waits for the relay loop to exit
func (s *RedisSubscriber) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done == nil {
		return nil
	}

	s.cancel()
	err := s.source.Close()

	select {
	case <-s.done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.done = nil
	s.source = nil
	s.logger.Info("catalog event subscriber stopped", zap.String("channel", s.channel))
	return err
}

func (s *RedisSubscriber) run(ctx context.Context, messages <-chan *redis.Message, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			if err := s.handleMessage(ctx, msg.Payload); err != nil {
				s.logger.Warn("dropping catalog event",
					zap.String("channel", msg.Channel),
					zap.Error(err),
				)
			}
		}
	}
}

func (s *RedisSubscriber) handleMessage(ctx context.Context, payload string) error {
	event, err := s.serializer.Deserialize([]byte(payload))
	if err != nil {
		return err
	}
	if event.StoreID() <= 0 {
		return fmt.Errorf("event %s has no store_id", event.EventType())
	}
	return s.publisher.Publish(ctx, event)
}
