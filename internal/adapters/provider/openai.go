package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bitbot/internal/core/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/rs/zerolog/log"
)

const searchToolName = "search"

var searchToolParameters = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"query": map[string]any{
			"type":        "string",
			"description": "The web search query.",
		},
	},
	"required":             []string{"query"},
	"additionalProperties": false,
}

type responsesClient interface {
	New(ctx context.Context, body responses.ResponseNewParams,
		opts ...option.RequestOption) (*responses.Response, error)
}

// OpenAI generates answers through the Responses API. Conversations are
// continued provider-side via previous response IDs rather than by resending
// prior turns.
type OpenAI struct {
	client responsesClient
	model  string
	effort string
}

func NewOpenAI(apiKey, model, effort string) *OpenAI {
	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAI{
		client: &client.Responses,
		model:  model,
		effort: effort,
	}
}

func (g *OpenAI) Complete(ctx context.Context, req domain.CompletionRequest) (domain.Completion, error) {
	params := g.baseParams(req.Instructions, req.EnableSearch)
	params.Input = responses.ResponseNewParamsInputUnion{OfInputItemList: buildInput(req.Items)}

	if req.PreviousID != "" {
		params.PreviousResponseID = openai.String(req.PreviousID)
	}

	resp, err := g.client.New(ctx, params)
	if err != nil {
		return domain.Completion{}, fmt.Errorf("openai API error: %w", err)
	}

	return parseResponse(resp)
}

func (g *OpenAI) SubmitToolResult(ctx context.Context, instructions, previousID string, call domain.ToolCall,
	output string) (domain.Completion, error) {
	params := g.baseParams(instructions, true)
	params.PreviousResponseID = openai.String(previousID)
	params.Input = responses.ResponseNewParamsInputUnion{OfInputItemList: responses.ResponseInputParam{
		responses.ResponseInputItemParamOfFunctionCallOutput(call.ID, output),
	}}

	resp, err := g.client.New(ctx, params)
	if err != nil {
		return domain.Completion{}, fmt.Errorf("openai API error: %w", err)
	}

	return parseResponse(resp)
}

func (g *OpenAI) baseParams(instructions string, enableSearch bool) responses.ResponseNewParams {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(g.model),
	}

	if instructions != "" {
		params.Instructions = openai.String(instructions)
	}

	if g.effort != "" {
		params.Reasoning = shared.ReasoningParam{Effort: shared.ReasoningEffort(g.effort)}
	}

	if enableSearch {
		params.Tools = []responses.ToolUnionParam{
			responses.ToolParamOfFunction(searchToolName, searchToolParameters, true),
		}
	}

	return params
}

func buildInput(items []domain.ContextItem) responses.ResponseInputParam {
	input := make(responses.ResponseInputParam, len(items))

	for i, item := range items {
		role := responses.EasyInputMessageRoleUser
		if item.Role == domain.Assistant {
			role = responses.EasyInputMessageRoleAssistant
		}

		message := responses.EasyInputMessageParam{Role: role}

		if item.ImageURL != "" {
			message.Content = responses.EasyInputMessageContentUnionParam{
				OfInputItemContentList: responses.ResponseInputMessageContentListParam{
					responses.ResponseInputContentUnionParam{
						OfInputText: &responses.ResponseInputTextParam{Text: item.Text},
					},
					responses.ResponseInputContentUnionParam{
						OfInputImage: &responses.ResponseInputImageParam{
							ImageURL: openai.String(item.ImageURL),
							Detail:   responses.ResponseInputImageDetailAuto,
						},
					},
				},
			}
		} else {
			message.Content = responses.EasyInputMessageContentUnionParam{
				OfString: openai.String(item.Text),
			}
		}

		input[i] = responses.ResponseInputItemUnionParam{OfMessage: &message}
	}

	return input
}

// parseResponse extracts the output text and, if present, the pending tool
// call from a response. The response ID doubles as the continuation handle.
func parseResponse(resp *responses.Response) (domain.Completion, error) {
	completion := domain.Completion{ID: resp.ID}

	var text strings.Builder

	for _, item := range resp.Output {
		switch item.Type {
		case "message":
			for _, content := range item.Content {
				if content.Type == "output_text" {
					text.WriteString(content.Text)
				}
			}
		case "function_call":
			if item.Name != searchToolName {
				return domain.Completion{}, fmt.Errorf("unexpected tool call: %s", item.Name)
			}

			var args struct {
				Query string `json:"query"`
			}
			if err := json.Unmarshal([]byte(item.Arguments), &args); err != nil {
				return domain.Completion{}, fmt.Errorf("malformed tool call arguments: %w", err)
			}

			completion.ToolCall = &domain.ToolCall{
				ID:    item.CallID,
				Name:  item.Name,
				Query: args.Query,
			}
		}
	}

	completion.Text = text.String()

	log.Debug().Str("responseId", completion.ID).
		Bool("toolCall", completion.ToolCall != nil).
		Msg("parsed provider response")

	return completion, nil
}
