package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  1000,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/api/employers/post-a-job", Method: "POST", Limit: 60, Window: time.Hour, Burst: 3},
		},
	}
}

func TestLimiter_BurstExhaustion(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4", "/api/employers/post-a-job", "POST")
		assert.True(t, allowed, "request %d within burst should pass", i)
		assert.Equal(t, 60, info.Limit)
	}

	allowed, _ := l.Allow("1.2.3.4", "/api/employers/post-a-job", "POST")
	assert.False(t, allowed, "burst exhausted")

	// A different client has its own bucket
	allowed, _ = l.Allow("5.6.7.8", "/api/employers/post-a-job", "POST")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/employers/post-a-job", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["1.2.3.4"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/api/employers/post-a-job", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Blacklist["1.2.3.4"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 5000; i++ {
		allowed, _ := l.Allow("1.2.3.4", "/health", "GET")
		assert.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/api/employers/post-a-job", Method: "POST", Limit: 60, Window: time.Hour},
		{Path: "/api/job-listings/job-cards/", Method: "PUT", Limit: 100, Window: time.Minute},
	}

	t.Run("exact match", func(t *testing.T) {
		match := MatchEndpoint("/api/employers/post-a-job", "POST", configs)
		assert.NotNil(t, match)
		assert.Equal(t, 60, match.Limit)
	})

	t.Run("method mismatch", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/api/employers/post-a-job", "GET", configs))
	})

	t.Run("prefix match", func(t *testing.T) {
		match := MatchEndpoint("/api/job-listings/job-cards/abc/update", "PUT", configs)
		assert.NotNil(t, match)
		assert.Equal(t, 100, match.Limit)
	})

	t.Run("health is unlimited", func(t *testing.T) {
		match := MatchEndpoint("/health", "GET", configs)
		assert.NotNil(t, match)
		assert.Equal(t, 0, match.Limit)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Nil(t, MatchEndpoint("/api/unknown", "GET", configs))
	})
}

func TestTokenBucket_Refill(t *testing.T) {
	// 10 tokens per second, capacity 1
	bucket := newTokenBucket(1, 10)

	assert.True(t, bucket.allow())
	assert.False(t, bucket.allow())

	time.Sleep(150 * time.Millisecond)
	assert.True(t, bucket.allow(), "bucket should refill after ~100ms")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestParseIPList(t *testing.T) {
	list := parseIPList(" 1.2.3.4, 5.6.7.8 ,,")
	assert.Equal(t, map[string]bool{"1.2.3.4": true, "5.6.7.8": true}, list)
}
