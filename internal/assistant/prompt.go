package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-studio/internal/prompts"
	"github.com/jonathan/resume-studio/internal/types"
)

const promptFile = "optimize.json"

// BuildPrompt assembles the single user message sent to the model: optional
// job-description context, the full current document as JSON, the literal
// user request, and the fixed task and response-format instructions.
func BuildPrompt(doc *types.ResumeDocument, jobDescription, instruction string) (string, error) {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serializing document: %w", err)
	}

	requirements, err := prompts.Get(promptFile, "requirements")
	if err != nil {
		return "", err
	}
	responseFormat, err := prompts.Get(promptFile, "response_format")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if jobDescription != "" {
		jobContext, err := prompts.Get(promptFile, "job_context")
		if err != nil {
			return "", err
		}
		sb.WriteString(prompts.Format(jobContext, map[string]string{"JobDescription": jobDescription}))
		sb.WriteString("\n\n")
	}
	sb.WriteString("Current Resume JSON Data:\n")
	sb.Write(docJSON)
	sb.WriteString("\n\nUser Request: ")
	sb.WriteString(instruction)
	sb.WriteString("\n\n")
	sb.WriteString(requirements)
	sb.WriteString("\n\n")
	sb.WriteString(responseFormat)
	return sb.String(), nil
}
