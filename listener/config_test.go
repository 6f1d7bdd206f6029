package listener

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_SetDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cfg         Config
		want        Config
		wantChanged bool
	}{
		{
			name:        "fills empty config",
			cfg:         Config{},
			want:        Config{Address: DefaultAddress, RequestTimeout: DefaultRequestTimeout},
			wantChanged: true,
		},
		{
			name:        "keeps explicit values",
			cfg:         Config{Address: ":9090", RequestTimeout: time.Second},
			want:        Config{Address: ":9090", RequestTimeout: time.Second},
			wantChanged: false,
		},
		{
			name:        "derives burst from rate",
			cfg:         Config{Address: ":9090", RequestTimeout: time.Second, RateLimit: 5},
			want:        Config{Address: ":9090", RequestTimeout: time.Second, RateLimit: 5, RateBurst: 5},
			wantChanged: true,
		},
		{
			name:        "fractional rate gets a burst of one",
			cfg:         Config{Address: ":9090", RequestTimeout: time.Second, RateLimit: 0.5},
			want:        Config{Address: ":9090", RequestTimeout: time.Second, RateLimit: 0.5, RateBurst: 1},
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := tt.cfg
			changed := cfg.SetDefaults()

			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "valid config", cfg: Config{Address: ":8080"}},
		{name: "empty address", cfg: Config{}, wantErr: ErrEmptyAddress},
		{name: "negative rate", cfg: Config{Address: ":8080", RateLimit: -1}, wantErr: ErrInvalidRateLimit},
		{name: "negative burst", cfg: Config{Address: ":8080", RateBurst: -1}, wantErr: ErrInvalidRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOptions(t *testing.T) {
	t.Parallel()

	var cfg Config

	for _, apply := range []Option{
		WithAddress("127.0.0.1:0"),
		WithRequestTimeout(time.Second),
		WithRateLimit(10, 20),
	} {
		apply(&cfg)
	}

	assert.Equal(t, Config{
		Address:        "127.0.0.1:0",
		RequestTimeout: time.Second,
		RateLimit:      10,
		RateBurst:      20,
	}, cfg)
}
