package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Khursands/Online-Pharmacy/pkg/logger"
)

// OrderPlaced 下单成功事件
type OrderPlaced struct {
	EventID     string            `json:"eventId"`
	OrderID     string            `json:"orderId"`
	UserID      string            `json:"userId"`
	TotalAmount float64           `json:"totalAmount"`
	Items       []OrderPlacedItem `json:"items"`
	PlacedAt    time.Time         `json:"placedAt"`
}

type OrderPlacedItem struct {
	MedicineID string  `json:"medicineId"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// Publisher 订单事件发布
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, evt OrderPlaced) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher 以订单ID为 key 写入 Kafka，同一订单的事件落在同一分区
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}
	return &KafkaPublisher{writer: w, topic: topic}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, evt OrderPlaced) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	msg := kafka.Message{
		Key:   []byte(evt.OrderID),
		Value: payload,
		Time:  evt.PlacedAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("OrderPlaced")},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error("publish order event failed",
			zap.String("topic", p.topic),
			zap.String("order_id", evt.OrderID),
			zap.Error(err))
		return err
	}
	logger.Debug("order event published", zap.String("order_id", evt.OrderID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NopPublisher kafka 未启用时使用
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, OrderPlaced) error { return nil }

func (NopPublisher) Close() error { return nil }
