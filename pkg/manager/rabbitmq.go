package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

const (
	maxBackoff     = 30 * time.Second
	publishTimeout = 5 * time.Second
	consumeRetry   = 2 * time.Second
)

var ErrClientClosed = errors.New("rabbitmq client is closed")

// RabbitMQClient publishes to a fanout exchange and consumes it through a
// private, server-named queue, so every connected relay instance gets a copy
// of every message. The connection is re-established with backoff when the
// broker drops it; the private queue is re-declared on each reconnect.
type RabbitMQClient struct {
	amqpURI  string
	exchange string
	logger   log.FieldLogger

	connMtx sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string

	isClosed    bool
	closeMtx    sync.Mutex
	done        chan struct{}
	reconnectCh chan struct{}

	consumeOnce sync.Once
	deliveryCh  chan []byte
}

func CreateRabbitMQClient(amqpURI, exchange string, logger log.FieldLogger) (*RabbitMQClient, error) {
	client := newClient(amqpURI, exchange, logger)

	if err := client.connect(); err != nil {
		return nil, err
	}

	go client.handleReconnect()

	return client, nil
}

func newClient(amqpURI, exchange string, logger log.FieldLogger) *RabbitMQClient {
	return &RabbitMQClient{
		amqpURI:     amqpURI,
		exchange:    exchange,
		logger:      logger.WithField("component", "rabbitmq"),
		done:        make(chan struct{}),
		reconnectCh: make(chan struct{}, 1),
		deliveryCh:  make(chan []byte),
	}
}

// connect dials the broker and declares the exchange and the private queue.
// Nothing is kept on failure. It refuses to connect once Close has begun, so
// a late reconnect cannot leave a live connection behind.
func (client *RabbitMQClient) connect() error {
	client.connMtx.Lock()
	defer client.connMtx.Unlock()

	if client.closed() {
		return ErrClientClosed
	}

	conn, err := amqp.Dial(client.amqpURI)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, queue, err := client.declare(conn)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			client.logger.WithError(closeErr).Debug("failed to close half-open connection")
		}
		return err
	}

	client.conn = conn
	client.channel = channel
	client.queue = queue

	go func() {
		closeErr := <-conn.NotifyClose(make(chan *amqp.Error, 1))
		if client.closed() {
			client.logger.Info("rabbitmq connection closed gracefully by application")
			return
		}
		client.logger.WithField("error", closeErr).Error("rabbitmq connection closed unexpectedly")
		client.triggerReconnect()
	}()

	client.logger.WithFields(log.Fields{
		"exchange": client.exchange,
		"queue":    client.queue,
	}).Info("rabbitmq client connected")
	return nil
}

func (client *RabbitMQClient) declare(conn *amqp.Connection) (*amqp.Channel, string, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open a channel: %w", err)
	}

	if err := channel.Confirm(false); err != nil {
		return nil, "", fmt.Errorf("failed to set confirm mode: %w", err)
	}

	err = channel.ExchangeDeclare(client.exchange, amqp.ExchangeFanout, true, false, false, false, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to declare exchange %s: %w", client.exchange, err)
	}

	queue, err := channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to declare a queue: %w", err)
	}
	if err := channel.QueueBind(queue.Name, "", client.exchange, false, nil); err != nil {
		return nil, "", fmt.Errorf("failed to bind queue %s: %w", queue.Name, err)
	}
	return channel, queue.Name, nil
}

func (client *RabbitMQClient) closed() bool {
	client.closeMtx.Lock()
	defer client.closeMtx.Unlock()
	return client.isClosed
}

// sleep waits for d and reports false if the client was closed meanwhile.
func (client *RabbitMQClient) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-client.done:
		return false
	}
}

func (client *RabbitMQClient) handleReconnect() {
	for {
		select {
		case <-client.done:
			return
		case <-client.reconnectCh:
		}

		client.logger.Info("attempting to reconnect to RabbitMQ")
		backoff := 1 * time.Second
		for {
			err := client.connect()
			if err == nil {
				client.logger.Info("successfully reconnected to RabbitMQ")
				break
			}
			if errors.Is(err, ErrClientClosed) {
				return
			}
			client.logger.WithError(err).WithField("after", backoff).Error("failed to reconnect to RabbitMQ")
			if !client.sleep(backoff) {
				return
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}
	}
}

// triggerReconnect never blocks and is a no-op once the client is closed.
func (client *RabbitMQClient) triggerReconnect() {
	select {
	case <-client.done:
	case client.reconnectCh <- struct{}{}:
	default:
	}
}

// Publish sends body to the exchange and waits for the broker confirmation.
func (client *RabbitMQClient) Publish(ctx context.Context, body []byte) error {
	client.connMtx.Lock()
	channel := client.channel
	client.connMtx.Unlock()

	if client.closed() {
		return ErrClientClosed
	}
	if channel == nil || channel.IsClosed() {
		return errors.New("channel is not initialized, possibly disconnected")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	confirm, err := channel.PublishWithDeferredConfirmWithContext(ctx,
		client.exchange,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Transient,
			Timestamp:    time.Now(),
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}
	if !acked {
		return errors.New("failed to publish a message: nacked by server")
	}

	client.logger.Debug("successfully published a message")
	return nil
}

// Consume starts a persistent consumer and returns the message bodies. The
// channel is closed after Close. Later calls return the same channel.
func (client *RabbitMQClient) Consume() (<-chan []byte, error) {
	if client.closed() {
		return nil, ErrClientClosed
	}

	client.consumeOnce.Do(func() {
		go client.consume()
	})
	return client.deliveryCh, nil
}

func (client *RabbitMQClient) consume() {
	defer close(client.deliveryCh)

	for {
		if client.closed() {
			client.logger.Info("consumer stopping because client is closed")
			return
		}

		client.connMtx.Lock()
		channel := client.channel
		queue := client.queue
		client.connMtx.Unlock()

		if channel == nil || channel.IsClosed() {
			client.logger.Warn("consumer waiting for channel to be ready")
			if !client.sleep(consumeRetry) {
				return
			}
			continue
		}

		msgs, err := channel.Consume(queue, "", true, true, false, false, nil)
		if err != nil {
			client.logger.WithError(err).Error("failed to register consumer, will retry")
			if !client.sleep(consumeRetry) {
				return
			}
			continue
		}

		client.logger.WithField("queue", queue).Info("consumer registered and waiting for messages")

		if !client.forward(msgs) {
			return
		}

		client.logger.Warn("rabbitmq delivery channel closed, re-establishing consumption")
	}
}

// forward hands deliveries to the consumer until msgs closes. It returns
// false when the client was closed first.
func (client *RabbitMQClient) forward(msgs <-chan amqp.Delivery) bool {
	for {
		select {
		case <-client.done:
			return false
		case msg, ok := <-msgs:
			if !ok {
				return true
			}
			select {
			case client.deliveryCh <- msg.Body:
			case <-client.done:
				return false
			}
		}
	}
}

func (client *RabbitMQClient) Close() error {
	client.closeMtx.Lock()
	if client.isClosed {
		client.closeMtx.Unlock()
		return ErrClientClosed
	}
	client.isClosed = true
	close(client.done)
	client.closeMtx.Unlock()

	client.connMtx.Lock()
	defer client.connMtx.Unlock()

	var finalErr error
	if client.channel != nil && !client.channel.IsClosed() {
		if err := client.channel.Close(); err != nil {
			finalErr = fmt.Errorf("channel close error: %w", err)
		}
	}
	if client.conn != nil && !client.conn.IsClosed() {
		if err := client.conn.Close(); err != nil {
			if finalErr != nil {
				finalErr = fmt.Errorf("connection close error: %w (previous error: %v)", err, finalErr)
			} else {
				finalErr = fmt.Errorf("connection close error: %w", err)
			}
		}
	}

	if finalErr == nil {
		client.logger.Info("rabbitmq connection closed gracefully")
	}
	return finalErr
}
