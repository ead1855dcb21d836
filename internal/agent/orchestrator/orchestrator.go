package orchestrator

import (
	"context"
	"fmt"

	"student-calendar-assistant/pkg/llmprovider"
)

// ProcessQuery runs the ReAct loop: Reason, Act, Observe. Conversation
// history is kept per session so follow-up questions work.
func (o *Orchestrator) ProcessQuery(ctx context.Context, sessionID, query string) (string, error) {
	history := o.loadHistory(sessionID)
	history = append(history, llmprovider.Message{
		Role:  "user",
		Parts: []llmprovider.Part{{Text: query}},
	})

	req := &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{
			Parts: []llmprovider.Part{{Text: SystemPromptAgent + buildTimeContext(o.timezone, o.now())}},
		},
		Messages: history,
		Tools:    o.registry.ToFunctionDefinitions(),
	}

	for step := 0; step < MaxAgentSteps; step++ {
		o.l.Infof(ctx, "Agent step %d/%d", step+1, MaxAgentSteps)

		// 1. Reason: ask the LLM what to do
		resp, err := o.llm.GenerateContent(ctx, req)
		if err != nil {
			return "", fmt.Errorf("agent LLM error at step %d: %w", step, err)
		}
		if len(resp.Content.Parts) == 0 {
			return "", fmt.Errorf(ErrMsgEmptyLLMResponse)
		}

		part := resp.Content.Parts[0]

		// 2. Check whether the LLM wants to call a tool
		if part.FunctionCall == nil {
			o.l.Infof(ctx, "Agent finished at step %d", step+1)
			o.saveHistory(sessionID, append(req.Messages, resp.Content))
			return part.Text, nil
		}

		// 3. Act: execute the tool
		toolName := part.FunctionCall.Name
		o.l.Infof(ctx, "Agent calling tool: %s with args: %+v", toolName, part.FunctionCall.Args)

		tool, ok := o.registry.Get(toolName)
		var toolResult interface{}

		if !ok {
			o.l.Errorf(ctx, "Tool %s not found", toolName)
			toolResult = map[string]string{"error": "tool not found"}
		} else {
			res, err := tool.Execute(ctx, part.FunctionCall.Args)
			if err != nil {
				o.l.Errorf(ctx, "Tool %s failed: %v", toolName, err)
				toolResult = map[string]string{"error": err.Error()}
			} else {
				toolResult = res
			}
		}

		// 4. Observe: add the tool exchange to the conversation
		req.Messages = append(req.Messages, llmprovider.Message{
			Role:  "model",
			Parts: []llmprovider.Part{{FunctionCall: part.FunctionCall}},
		})
		req.Messages = append(req.Messages, llmprovider.Message{
			Role: "function",
			Parts: []llmprovider.Part{{
				FunctionResponse: &llmprovider.FunctionResponse{
					Name:     toolName,
					Response: toolResult,
				},
			}},
		})
	}

	o.l.Warnf(ctx, "Agent exceeded max steps (%d)", MaxAgentSteps)
	o.saveHistory(sessionID, req.Messages)
	return MsgMaxStepsExceeded, nil
}

func (o *Orchestrator) loadHistory(sessionID string) []llmprovider.Message {
	if sessionID == "" {
		return nil
	}
	memory, ok := o.sessions.Get(sessionID)
	if !ok {
		return nil
	}
	return append([]llmprovider.Message(nil), memory.Messages...)
}

func (o *Orchestrator) saveHistory(sessionID string, messages []llmprovider.Message) {
	if sessionID == "" {
		return
	}
	if len(messages) > MaxSessionHistory {
		messages = messages[len(messages)-MaxSessionHistory:]
	}
	o.sessions.Add(sessionID, &SessionMemory{
		SessionID: sessionID,
		Messages:  messages,
	})
}
