package answerinquiry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"

	"autostream-assistant/internal/common/logger"
)

var (
	ErrKnowledgeSearchFailed = errors.New("KNOWLEDGE_SEARCH_FAILED")
	ErrKnowledgeTimeout      = errors.New("KNOWLEDGE_TIMEOUT")
)

// Handler answers inquiry turns from the knowledge-base index. Rendered
// answers are cached in Redis keyed by the normalized query; the cache is
// best effort and never fails a turn.
type Handler struct {
	config      *Config
	esClient    *elasticsearch.Client
	redisClient *redis.Client
	logger      logger.Logger
}

func NewHandler(config *Config, esClient *elasticsearch.Client, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config:      config,
		esClient:    esClient,
		redisClient: redisClient,
		logger:      log.WithFields(map[string]interface{}{"component": "answer-inquiry"}),
	}
}

func cacheKey(query string) string {
	return "kb:answer:" + strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

func (h *Handler) Answer(ctx context.Context, query string) (string, error) {
	key := cacheKey(query)

	if h.redisClient != nil {
		if cached, err := h.redisClient.Get(ctx, key).Result(); err == nil {
			h.logger.Debug("answer served from cache", map[string]interface{}{"cacheKey": key})
			return cached, nil
		}
	}

	docs, err := h.search(ctx, query)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", ErrKnowledgeTimeout
		}
		return "", err
	}

	if len(docs) == 0 {
		return NoAnswerResponse, nil
	}

	answer := renderAnswer(docs)

	if h.redisClient != nil {
		if err := h.redisClient.Set(ctx, key, answer, h.config.CacheTTL).Err(); err != nil {
			h.logger.Warn("answer cache write failed", map[string]interface{}{
				"cacheKey": key,
				"error":    err.Error(),
			})
		}
	}

	return answer, nil
}

func (h *Handler) search(ctx context.Context, query string) ([]KnowledgeDoc, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"topic^3", "title^2", "body"},
				"type":   "best_fields",
			},
		},
	}

	body, _ := json.Marshal(queryBody)
	size := h.config.MaxResults

	req := esapi.SearchRequest{
		Index: []string{h.config.IndexName},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, h.esClient)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKnowledgeSearchFailed, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: search returned status %s", ErrKnowledgeSearchFailed, res.Status())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source KnowledgeDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}

	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("%w: decode error: %v", ErrKnowledgeSearchFailed, err)
	}

	docs := make([]KnowledgeDoc, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		docs = append(docs, hit.Source)
	}

	return docs, nil
}

// renderAnswer turns retrieved docs into the user-facing reply. Free text
// first, then plans, then policies.
func renderAnswer(docs []KnowledgeDoc) string {
	var parts []string

	for _, doc := range docs {
		if doc.Body != "" {
			parts = append(parts, doc.Body)
		}
		if len(doc.Plans) > 0 {
			parts = append(parts, "📋 Pricing Plans:\n"+renderPlans(doc.Plans))
		}
		if len(doc.Policies) > 0 {
			parts = append(parts, "📜 Policies:\n"+renderPolicies(doc.Policies))
		}
	}

	return strings.Join(parts, "\n\n")
}

func renderPlans(plans []PricingPlan) string {
	rendered := make([]string, 0, len(plans))
	for _, plan := range plans {
		lines := []string{
			fmt.Sprintf("🏷️  Name: %s", plan.Name),
			fmt.Sprintf("💰 Price: %s", plan.Price),
			"✨ Features:",
		}
		for _, feature := range plan.Features {
			lines = append(lines, "- "+feature)
		}
		rendered = append(rendered, strings.Join(lines, "\n"))
	}
	return strings.Join(rendered, "\n\n")
}

func renderPolicies(policies map[string]string) string {
	keys := make([]string, 0, len(policies))
	for key := range policies {
		keys = append(keys, key)
	}
	// Stable output regardless of map iteration order.
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("📝 %s: %s", titleCase(key), policies[key]))
	}
	return strings.Join(lines, "\n")
}

func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
