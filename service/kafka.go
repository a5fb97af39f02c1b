package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/erraggy/rostertools/parser"
)

// ingester consumes roster records from Kafka and maintains a streaming
// frequency table over the configured key field. Each message value is one
// roster record as a JSON object. Identifiers seen more than once increment
// the duplicates counter and log at Warn.
type ingester struct {
	conf     KafkaConfig
	keyField string
	logger   *zap.Logger
	metrics  *coreMetrics
	client   *kgo.Client

	mu     sync.Mutex
	counts map[string]int
}

func newIngester(conf KafkaConfig, keyField string, logger *zap.Logger, metrics *coreMetrics) (*ingester, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(strings.Split(conf.Brokers, ",")...),
		kgo.ConsumerGroup(conf.Group),
		kgo.ConsumeTopics(conf.Topic),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, err
	}
	return &ingester{
		conf:     conf,
		keyField: keyField,
		logger:   logger.Named("kafka"),
		metrics:  metrics,
		client:   client,
		counts:   make(map[string]int),
	}, nil
}

// run polls until ctx is cancelled. Offsets are committed after each poll;
// an abnormal restart may replay the tail of the stream, which only inflates
// the in-memory table.
func (ig *ingester) run(ctx context.Context) {
	ig.logger.Info("Ingest started",
		zap.String("brokers", ig.conf.Brokers),
		zap.String("topic", ig.conf.Topic),
		zap.String("group", ig.conf.Group),
	)
	for {
		fetches := ig.client.PollFetches(ctx)
		if ctx.Err() != nil {
			return
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			// All errors are retried internally when fetching, but
			// non-retriable errors are returned from polls.
			for _, fe := range errs {
				ig.logger.Warn("Fetch error",
					zap.String("topic", fe.Topic),
					zap.Error(fe.Err),
				)
			}
		}

		iter := fetches.RecordIter()
		for !iter.Done() {
			record := iter.Next()
			ig.ingest(record.Value)
		}

		if err := ig.client.CommitUncommittedOffsets(ctx); err != nil && ctx.Err() == nil {
			ig.logger.Warn("Offset commit failed", zap.Error(err))
		}
	}
}

// ingest folds one roster record into the frequency table.
func (ig *ingester) ingest(data []byte) {
	var rec parser.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		ig.logger.Warn("Dropping undecodable record", zap.Error(err))
		return
	}
	value, ok := rec[ig.keyField]
	if !ok || value == nil {
		return
	}
	key := parser.CanonicalString(value)

	ig.mu.Lock()
	ig.counts[key]++
	count := ig.counts[key]
	ig.mu.Unlock()

	if count == 2 {
		// First repeat of this identifier.
		ig.metrics.duplicatesFound.Inc()
		ig.logger.Warn("Duplicate identifier in stream",
			zap.String("key_field", ig.keyField),
			zap.String("value", key),
			zap.Int("count", count),
		)
	}
}

// seenCount returns the occurrence count for an identifier. Used in tests.
func (ig *ingester) seenCount(value string) int {
	ig.mu.Lock()
	defer ig.mu.Unlock()
	return ig.counts[value]
}

func (ig *ingester) close() {
	ig.client.Close()
	ig.logger.Info("Ingest stopped")
}
