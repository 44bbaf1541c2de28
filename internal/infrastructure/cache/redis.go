// Package cache memoiza resultados de reportes en Redis. Sustituye el caché
// en memoria de proceso del dashboard original por uno compartible entre
// réplicas; si Redis no está configurado, los reportes se calculan siempre.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache caché opcional de respuestas JSON de reportes. Un valor nil es
// válido y equivale a "sin caché".
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New conecta a Redis. Addr vacío devuelve nil (caché deshabilitado).
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*ReportCache, error) {
	if addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &ReportCache{client: client, ttl: ttl}, nil
}

// Key clave canónica de un reporte para un usuario.
func Key(report, userID string) string {
	return "report:" + report + ":" + userID
}

// Get deserializa la entrada en dest. Devuelve false si no hay entrada.
func (c *ReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// Set serializa y guarda la entrada con el TTL configurado.
func (c *ReportCache) Set(ctx context.Context, key string, value any) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Close cierra la conexión (no-op si el caché está deshabilitado).
func (c *ReportCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
