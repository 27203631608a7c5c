// cmd/assistant/shell.go
package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	answerinquiry "autostream-assistant/internal/assistant/answer-inquiry"
	"autostream-assistant/internal/assistant/dispatch"
	leadledger "autostream-assistant/internal/assistant/lead-ledger"
	"autostream-assistant/internal/common/config"
	"autostream-assistant/internal/common/embedding"
	apperrors "autostream-assistant/internal/common/errors"
	"autostream-assistant/internal/common/observability"
	"autostream-assistant/internal/models"
)

const (
	restartResponse = "🔄 Conversation restarted. How can I help you today?"
	goodbyeResponse = "Goodbye! 👋"
	errorResponse   = "Sorry, something went wrong on my side. Please try again."
)

// toStandardError maps collaborator sentinel errors onto coded errors so
// the log line carries the code, category and retryability.
func toStandardError(err error) *apperrors.StandardError {
	switch {
	case stderrors.Is(err, leadledger.ErrLedgerInsertFailed):
		return apperrors.NewLedgerInsertFailedError(err)
	case stderrors.Is(err, leadledger.ErrLedgerQueryFailed):
		return apperrors.NewLedgerQueryFailedError(err)
	case stderrors.Is(err, answerinquiry.ErrKnowledgeTimeout):
		return apperrors.NewKnowledgeTimeoutError()
	case stderrors.Is(err, answerinquiry.ErrKnowledgeSearchFailed):
		return apperrors.NewKnowledgeSearchFailedError(err)
	case stderrors.Is(err, embedding.ErrEmbeddingAPITimeout):
		return apperrors.NewEmbeddingAPITimeoutError()
	case stderrors.Is(err, embedding.ErrEmbeddingFailed):
		return apperrors.NewEmbeddingFailedError(err)
	default:
		return apperrors.NewExternalServiceError("assistant", err)
	}
}

func matchesPhrase(input string, phrases []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, phrase := range phrases {
		if normalized == phrase {
			return true
		}
	}
	return false
}

// runShell reads turns from stdin until an exit phrase arrives. Restart
// phrases reset the conversation without touching persisted leads.
func runShell(ctx context.Context, cfg *config.Config, dispatcher *dispatch.Dispatcher, obs *observability.Observability, zapLog *zap.Logger) {
	fmt.Println("AutoStream Assistant is running. Type 'exit' to quit.")
	fmt.Println()

	state := models.NewConversationState()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if matchesPhrase(input, cfg.Conversation.ExitPhrases) {
			fmt.Println("Agent: " + goodbyeResponse)
			break
		}

		if matchesPhrase(input, cfg.Conversation.RestartPhrases) {
			state.Reset()
			fmt.Println("Agent: " + restartResponse)
			continue
		}

		turnStart := time.Now()
		if err := dispatcher.HandleTurn(ctx, state, input); err != nil {
			stdErr := toStandardError(err)
			zapLog.Error("turn processing failed",
				zap.Error(err),
				zap.String("code", string(stdErr.Code)),
				zap.String("category", apperrors.GetErrorCategory(stdErr.Code)),
				zap.Bool("retryable", stdErr.Retryable),
			)
			fmt.Println("Agent: " + errorResponse)
			continue
		}

		obs.RecordTurnProcessed(ctx, string(state.Intent))
		obs.RecordTurnDuration(ctx, time.Since(turnStart), string(state.Intent))

		fmt.Println("Agent: " + state.Response)
	}

	if err := scanner.Err(); err != nil {
		zapLog.Error("input read failed", zap.Error(err))
	}
}
