package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inconshreveable/log15"

	"listqueue/broker"
	"listqueue/types"
)

type Client struct {
	queue broker.Broker
}

func NewClient(queue broker.Broker) *Client {
	return &Client{queue: queue}
}

func (c *Client) SendMessage(ctx context.Context, item *types.Item) error {
	if item.ID == "" {
		id, err := uuid.NewRandom()
		if err != nil {
			return err
		}
		item.ID = id.String()
	}
	req, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return c.queue.Send(ctx, string(req))
}

// Close releases the broker connection when the broker holds one.
func (c *Client) Close() error {
	if closer, ok := c.queue.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Client) Push(ctx context.Context, queue, value string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.PushItem, Queue: queue, Value: value})
}

func (c *Client) Pop(ctx context.Context, queue string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.PopItem, Queue: queue})
}

func (c *Client) Front(ctx context.Context, queue string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.FrontItem, Queue: queue})
}

func (c *Client) Back(ctx context.Context, queue string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.BackItem, Queue: queue})
}

func (c *Client) Size(ctx context.Context, queue string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.SizeItem, Queue: queue})
}

func (c *Client) Dump(ctx context.Context, queue string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.DumpItem, Queue: queue})
}

func (c *Client) List(ctx context.Context) error {
	return c.SendMessage(ctx, &types.Item{Action: types.ListItem})
}

func (c *Client) Drop(ctx context.Context, queue string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.DropItem, Queue: queue})
}

func (c *Client) Copy(ctx context.Context, queue, target string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.CopyItem, Queue: queue, Target: target})
}

func (c *Client) Move(ctx context.Context, queue, target string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.MoveItem, Queue: queue, Target: target})
}

func (c *Client) Compare(ctx context.Context, queue, target string) error {
	return c.SendMessage(ctx, &types.Item{Action: types.CompareItem, Queue: queue, Target: target})
}

type ClientsManager struct {
	clients   map[string]*ClientUsage
	input     io.Reader
	newClient func() (*Client, error)
	idle      time.Duration
	logger    log15.Logger
	mux       sync.Mutex
}

type ClientUsage struct {
	client   *Client
	lastUsed time.Time
}

func NewClientsManager(input io.Reader, idle time.Duration, newClient func() (*Client, error), logger log15.Logger) *ClientsManager {
	if idle <= 0 {
		idle = 10 * time.Second
	}
	return &ClientsManager{
		clients:   make(map[string]*ClientUsage),
		input:     input,
		newClient: newClient,
		idle:      idle,
		logger:    logger,
	}
}

// ListenClientActions reads "<clientId> <item>" lines until the input ends
// or ctx is cancelled. Items are sent in input order. Idle clients are
// evicted between sends, never during one.
func (cm *ClientsManager) ListenClientActions(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(cm.idle)
	defer ticker.Stop()

	lines, errChan := SubscribeToFileInput(ctx, cm.input)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			cm.removeUnusedClients()
		case line, ok := <-lines:
			if !ok {
				return <-errChan
			}
			if len(line) == 0 {
				continue
			}
			clientId, client, item, err := cm.processClientAction(line)
			if err != nil {
				cm.logger.Error("Cannot process client action", "line", line, "error", err)
				continue
			}
			if err := client.SendMessage(ctx, item); err != nil {
				cm.logger.Error("Cannot send message", "client", clientId, "error", err)
			}
		}
	}
}

func (cm *ClientsManager) removeUnusedClients() {
	cm.evict(func(usage *ClientUsage) bool {
		return time.Since(usage.lastUsed) > cm.idle
	})
}

// Close closes and forgets every tracked client.
func (cm *ClientsManager) Close() {
	cm.evict(func(*ClientUsage) bool { return true })
}

func (cm *ClientsManager) evict(match func(*ClientUsage) bool) {
	cm.mux.Lock()
	defer cm.mux.Unlock()
	for clientId, clientUsage := range cm.clients {
		if !match(clientUsage) {
			continue
		}
		delete(cm.clients, clientId)
		if err := clientUsage.client.Close(); err != nil {
			cm.logger.Warn("Cannot close client", "client", clientId, "error", err)
		}
	}
}

func (cm *ClientsManager) processClientAction(inputStr string) (string, *Client, *types.Item, error) {
	clientId, itemStr, found := strings.Cut(strings.TrimSpace(inputStr), " ")
	if !found || clientId == "" {
		return "", nil, nil, fmt.Errorf("wrong input string, should be in format <clientId> <item>")
	}

	var item *types.Item
	if err := json.Unmarshal([]byte(itemStr), &item); err != nil {
		return "", nil, nil, err
	}
	if item == nil {
		return "", nil, nil, fmt.Errorf("empty item for client %s", clientId)
	}

	cm.mux.Lock()
	defer cm.mux.Unlock()
	usage, ok := cm.clients[clientId]
	if !ok {
		client, err := cm.newClient()
		if err != nil {
			return "", nil, nil, err
		}
		usage = &ClientUsage{client: client}
		cm.clients[clientId] = usage
	}
	usage.lastUsed = time.Now()

	return clientId, usage.client, item, nil
}

func (cm *ClientsManager) Len() int {
	cm.mux.Lock()
	defer cm.mux.Unlock()
	return len(cm.clients)
}
