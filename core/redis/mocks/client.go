package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of redis.Client
type Client struct {
	mock.Mock
}

func (m *Client) Incr(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *Client) MGet(ctx context.Context, keys ...string) ([]interface{}, error) {
	callArgs := make([]interface{}, 0, len(keys)+1)
	callArgs = append(callArgs, ctx)
	for _, key := range keys {
		callArgs = append(callArgs, key)
	}
	args := m.Called(callArgs...)
	if vals, ok := args.Get(0).([]interface{}); ok {
		return vals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) LRem(ctx context.Context, key string, count int64, value interface{}) error {
	args := m.Called(ctx, key, count, value)
	return args.Error(0)
}

func (m *Client) LPush(ctx context.Context, key string, value interface{}) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *Client) LTrim(ctx context.Context, key string, start, stop int64) error {
	args := m.Called(ctx, key, start, stop)
	return args.Error(0)
}

func (m *Client) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	args := m.Called(ctx, key, start, stop)
	if vals, ok := args.Get(0).([]string); ok {
		return vals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Close() error {
	args := m.Called()
	return args.Error(0)
}
