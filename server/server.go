package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/inconshreveable/log15"

	"listqueue/broker"
	"listqueue/registry"
	"listqueue/types"
)

type Server struct {
	data    *registry.Registry
	queue   broker.Broker
	logFile io.Writer
	logger  log15.Logger
	logsMux sync.Mutex
}

func NewServer(queue broker.Broker, data *registry.Registry, logFile io.Writer, logger log15.Logger) *Server {
	return &Server{
		data:    data,
		queue:   queue,
		logFile: logFile,
		logger:  logger,
	}
}

// StartServer consumes messages until ctx is cancelled or receiving fails.
func (s *Server) StartServer(ctx context.Context) error {
	s.logger.Debug("Listening queue!")
	messagesChan := make(chan broker.Message)
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.listenMessages(ctx, messagesChan)
	}()
	return s.processMessages(ctx, messagesChan, errChan)
}

func (s *Server) listenMessages(ctx context.Context, messagesChan chan<- broker.Message) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			messages, err := s.queue.Receive(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Error("Error while receiving messages", "error", err.Error())
				return err
			}
			for _, message := range messages {
				select {
				case messagesChan <- message:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}
}

// processMessages applies messages one at a time so that commands on the
// same queue keep their order.
func (s *Server) processMessages(ctx context.Context, messagesChan <-chan broker.Message, errChan <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errChan:
			return err
		case message := <-messagesChan:
			var item *types.Item
			if err := json.Unmarshal([]byte(message.Body), &item); err != nil {
				s.logger.Error("Cannot unmarshal message", "id", message.ID, "error", err.Error())
			}
			if item != nil {
				s.writeLog(s.processItem(item))
			}
			if err := s.queue.Ack(ctx, message); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Error("Error while deleting message", "id", message.ID, "error", err)
				return err
			}
		}
	}
}

func (s *Server) writeLog(log string) {
	s.logsMux.Lock()
	defer s.logsMux.Unlock()
	s.logger.Debug(log)
	if _, err := fmt.Fprintf(s.logFile, "%s || %s\n", time.Now().Format(time.RFC822), log); err != nil {
		s.logger.Error("Cannot write action log", "error", err)
	}
}

func (s *Server) processItem(item *types.Item) (logMessage string) {
	if item.Action.NeedsTarget() && item.Target == "" {
		return fmt.Sprintf("%s() failed. Queue(%s): missing target", item.Action, item.Queue)
	}

	switch item.Action {
	case types.PushItem:
		var size int
		err := s.data.Do(item.Queue, true, func(q *types.Queue[string]) {
			q.Push(item.Value)
			size = q.Len()
		})
		if err != nil {
			return failed(item, err)
		}
		return fmt.Sprintf("Push() done. Queue(%s) value: %s, size: %d", item.Queue, item.Value, size)
	case types.PopItem:
		var v string
		var ok bool
		err := s.data.Do(item.Queue, false, func(q *types.Queue[string]) {
			v, ok = q.Pop()
		})
		if err != nil {
			return failed(item, err)
		}
		return fmt.Sprintf("Pop() done. Queue(%s) value: %s, popped: %t", item.Queue, v, ok)
	case types.FrontItem, types.BackItem:
		var v string
		var ok bool
		err := s.data.Do(item.Queue, false, func(q *types.Queue[string]) {
			if q.Empty() {
				return
			}
			ok = true
			if item.Action == types.FrontItem {
				v = *q.Front()
			} else {
				v = *q.Back()
			}
		})
		if err != nil {
			return failed(item, err)
		}
		if !ok {
			return fmt.Sprintf("%s() done. Queue(%s) is empty", item.Action, item.Queue)
		}
		return fmt.Sprintf("%s() done. Queue(%s) value: %s", item.Action, item.Queue, v)
	case types.SizeItem:
		var size int
		err := s.data.Do(item.Queue, false, func(q *types.Queue[string]) {
			size = q.Len()
		})
		if err != nil {
			return failed(item, err)
		}
		return fmt.Sprintf("Size() done. Queue(%s) size: %d", item.Queue, size)
	case types.DumpItem:
		var values []string
		err := s.data.Do(item.Queue, false, func(q *types.Queue[string]) {
			for v := range q.All() {
				values = append(values, v)
			}
		})
		if err != nil {
			return failed(item, err)
		}
		return fmt.Sprintf("Dump() done. Queue(%s) [%s]", item.Queue, strings.Join(values, " "))
	case types.ListItem:
		return fmt.Sprintf("List() done. Queues: [%s]", strings.Join(s.data.Names(), " "))
	case types.DropItem:
		ok := s.data.Drop(item.Queue)
		return fmt.Sprintf("Drop() done. Queue(%s) deleted: %t", item.Queue, ok)
	case types.CopyItem:
		if err := s.data.Copy(item.Queue, item.Target); err != nil {
			return failed(item, err)
		}
		return fmt.Sprintf("Copy() done. Queue(%s) copied to Queue(%s)", item.Queue, item.Target)
	case types.MoveItem:
		if err := s.data.Move(item.Queue, item.Target); err != nil {
			return failed(item, err)
		}
		return fmt.Sprintf("Move() done. Queue(%s) moved to Queue(%s)", item.Queue, item.Target)
	case types.CompareItem:
		equal, err := s.data.Compare(item.Queue, item.Target)
		if err != nil {
			return failed(item, err)
		}
		return fmt.Sprintf("Compare() done. Queue(%s) == Queue(%s): %t", item.Queue, item.Target, equal)
	default:
		return "Unknown action!"
	}
}

func failed(item *types.Item, err error) string {
	if errors.Is(err, registry.ErrNoQueue) {
		if item.Action.NeedsTarget() {
			return fmt.Sprintf("%s() failed. Queue(%s) or Queue(%s) does not exist", item.Action, item.Queue, item.Target)
		}
		return fmt.Sprintf("%s() failed. Queue(%s) does not exist", item.Action, item.Queue)
	}
	return fmt.Sprintf("%s() failed. Queue(%s): %v", item.Action, item.Queue, err)
}
