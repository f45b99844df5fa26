// Package pushclient implements the outbound RPC stub the coordinator uses
// to notify a vehicle or the simulation API host of tick progress (§4.7).
package pushclient

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"ticksync/pkg/api"
)

// pushDeadline bounds how long PushTick waits for the RPC to complete
// before treating the push as failed. The source blocks on a raw
// completion latch with no timeout; §7 treats push failure as best-effort,
// so a bounded wait here only prevents one slow client from starving a
// fan-out worker forever.
const pushDeadline = 5 * time.Second

// Client wraps a single outbound stub addressed to one vehicle or to the
// simulation API host. PushTick issues a blocking unary call that returns
// when it completes or the deadline expires, giving the
// caller a synchronous boolean result (§4.7).
type Client struct {
	log    *zap.Logger
	target string
	conn   *grpc.ClientConn
	client api.PushClient
}

// Dial connects to host:port with insecure credentials, matching the
// source's channel-credentials policy; keepalive is configured once at the
// server, not per outbound dial.
func Dial(log *zap.Logger, host string, port int32) (*Client, error) {
	target := fmt.Sprintf("%s:%d", host, port)
	conn, err := grpc.NewClient(target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(api.Codec{})),
	)
	if err != nil {
		return nil, fmt.Errorf("pushclient: dial %s: %w", target, err)
	}
	return &Client{
		log:    log,
		target: target,
		conn:   conn,
		client: api.NewPushClient(conn),
	}, nil
}

// PushTick sends a Tick to the wrapped target and reports whether it
// succeeded. Failures are logged with the RPC status and returned as
// false; per §7 the barrier and fan-out dispatcher treat this as
// best-effort and continue.
func (c *Client) PushTick(tickID int32, command api.Command, lastClientDurationNS int64) bool {
	ctx, cancel := context.WithTimeout(context.Background(), pushDeadline)
	defer cancel()

	_, err := c.client.PushTick(ctx, &api.Tick{
		TickId:               tickID,
		Command:              command,
		LastClientDurationNs: lastClientDurationNS,
	})
	if err != nil {
		c.log.Warn("push tick failed",
			zap.String("target", c.target),
			zap.Int32("tick_id", tickID),
			zap.String("command", command.String()),
			zap.Error(err))
		return false
	}
	return true
}

// Close tears down the underlying channel.
func (c *Client) Close() error {
	return c.conn.Close()
}
