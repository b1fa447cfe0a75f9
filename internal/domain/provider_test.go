package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestProviderRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	newMock := func(source Source) *MockFlightProvider {
		m := NewMockFlightProvider(ctrl)
		m.EXPECT().Name().Return(source).AnyTimes()
		return m
	}

	t.Run("empty registry", func(t *testing.T) {
		r := NewProviderRegistry()
		assert.Equal(t, 0, r.Len())
		assert.Nil(t, r.Get(SourceAmadeus))
		assert.Empty(t, r.All())
	})

	t.Run("registering nil is a no-op", func(t *testing.T) {
		r := NewProviderRegistry()
		r.Register(nil)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("All returns providers in priority order", func(t *testing.T) {
		r := NewProviderRegistry()
		// Register in reverse priority order on purpose.
		r.Register(newMock(SourceFallback))
		r.Register(newMock(SourceKiwi))
		r.Register(newMock(SourceSkyScanner))
		r.Register(newMock(SourceAmadeus))

		assert.Equal(t, []Source{SourceAmadeus, SourceSkyScanner, SourceKiwi, SourceFallback}, r.Sources())
	})

	t.Run("duplicate registration replaces", func(t *testing.T) {
		r := NewProviderRegistry()

		first := NewMockFlightProvider(ctrl)
		first.EXPECT().Name().Return(SourceAmadeus).AnyTimes()
		first.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]Flight{{ID: "1"}}, nil).AnyTimes()

		second := NewMockFlightProvider(ctrl)
		second.EXPECT().Name().Return(SourceAmadeus).AnyTimes()
		second.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]Flight{{ID: "2"}}, nil).AnyTimes()

		r.Register(first)
		r.Register(second)

		assert.Equal(t, 1, r.Len())
		flights, err := r.Get(SourceAmadeus).Search(context.Background(), SearchRequest{})
		assert.NoError(t, err)
		assert.Equal(t, "2", flights[0].ID)
	})
}

func TestMockFlightProvider_ImplementsInterface(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var _ FlightProvider = NewMockFlightProvider(ctrl)
}
