package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineClicker_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	handled := false

	bus.Subscribe(ClickResolved, func(ctx context.Context, evt Event) error {
		assert.Equal(t, ClickResolved, evt.Type)
		assert.Equal(t, "payload", evt.Payload)
		handled = true
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), New(ClickResolved, "payload")))
	assert.True(t, handled)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, evt Event) error {
		count++
		return nil
	}

	bus.Subscribe(ItemBought, handler)
	bus.Subscribe(ItemBought, handler)

	require.NoError(t, bus.Publish(context.Background(), New(ItemBought, nil)))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishWithoutSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), New(AdminGrant, nil)))
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(CasinoResolved, func(ctx context.Context, evt Event) error {
		return errors.New("handler error")
	})

	assert.Error(t, bus.Publish(context.Background(), New(CasinoResolved, nil)))
}

func TestNewForAccount(t *testing.T) {
	evt := NewForAccount(CaseRevealed, "a@example.com", domain.CasePayload{PrizeID: "god"})

	assert.Equal(t, EventSchemaVersion, evt.Version)
	assert.Equal(t, "a@example.com", evt.GetMetadataValue(MetadataKeyIdentity))
	assert.Nil(t, New(CaseRevealed, nil).GetMetadataValue(MetadataKeyIdentity))
}

func TestDecodePayload(t *testing.T) {
	direct, err := DecodePayload[domain.CasinoPayload](domain.CasinoPayload{Bet: 10})
	require.NoError(t, err)
	assert.Equal(t, 10, direct.Bet)

	fromMap, err := DecodePayload[domain.CasinoPayload](map[string]interface{}{"bet": 25, "won": true})
	require.NoError(t, err)
	assert.Equal(t, 25, fromMap.Bet)
	assert.True(t, fromMap.Won)

	fromPtr, err := DecodePayload[domain.CasinoPayload](&domain.CasinoPayload{Bet: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, fromPtr.Bet)

	_, err = DecodePayload[domain.CasinoPayload]("not an object")
	assert.Error(t, err)
}

func TestEncodePayload(t *testing.T) {
	data, err := EncodePayload(domain.CasinoPayload{Bet: 3})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"bet":3`)

	raw := []byte(`{"already":"encoded"}`)
	passthrough, err := EncodePayload(json.RawMessage(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, []byte(passthrough))
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(2*time.Second, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(2*time.Second, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(2*time.Second, 5))
}
