package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	inputClosedMessageConstant          = "prompt input closed"
	noChoicesMessageConstant            = "prompt has no choices"
	selectChoiceTemplateConstant        = "  %d) %s\n"
	selectQuestionTemplateConstant      = "%s\n"
	selectAnswerPromptTemplateConstant  = "Enter choice [1-%d]: "
	multiSelectAnswerPromptConstant     = "Enter choices separated by commas (blank for none): "
	inputWithDefaultTemplateConstant    = "%s [%s]: "
	inputWithoutDefaultTemplateConstant = "%s: "
	invalidChoiceTemplateConstant       = "Invalid choice %q; enter a number between 1 and %d.\n"
	choiceSeparatorConstant             = ","
)

var (
	// ErrInputClosed indicates the input stream ended before an answer was read.
	ErrInputClosed = errors.New(inputClosedMessageConstant)

	// ErrNoChoices indicates a selection prompt was given nothing to choose from.
	ErrNoChoices = errors.New(noChoicesMessageConstant)
)

// IOPrompter reads answers from an io.Reader and writes questions to an io.Writer.
type IOPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPrompter constructs a prompter from the provided reader and writer.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	if output == nil {
		output = io.Discard
	}
	return &IOPrompter{reader: bufio.NewReader(input), writer: output}
}

// Select asks the operator to pick one choice and returns its index.
// Answers may be the 1-based number or the exact choice text; invalid answers are asked again.
func (prompter *IOPrompter) Select(question string, choices []string) (int, error) {
	if len(choices) == 0 {
		return 0, ErrNoChoices
	}
	if writeError := prompter.renderChoices(question, choices); writeError != nil {
		return 0, writeError
	}

	for {
		if _, writeError := fmt.Fprintf(prompter.writer, selectAnswerPromptTemplateConstant, len(choices)); writeError != nil {
			return 0, writeError
		}
		answer, readError := prompter.readLine()
		if readError != nil {
			return 0, readError
		}
		if selectedIndex, valid := resolveChoice(answer, choices); valid {
			return selectedIndex, nil
		}
		if _, writeError := fmt.Fprintf(prompter.writer, invalidChoiceTemplateConstant, answer, len(choices)); writeError != nil {
			return 0, writeError
		}
	}
}

// MultiSelect asks the operator to pick any number of choices and returns their indexes in answer order.
// Duplicates are ignored. A blank answer selects nothing.
func (prompter *IOPrompter) MultiSelect(question string, choices []string) ([]int, error) {
	if len(choices) == 0 {
		return nil, ErrNoChoices
	}
	if writeError := prompter.renderChoices(question, choices); writeError != nil {
		return nil, writeError
	}

	for {
		if _, writeError := io.WriteString(prompter.writer, multiSelectAnswerPromptConstant); writeError != nil {
			return nil, writeError
		}
		answer, readError := prompter.readLine()
		if readError != nil {
			return nil, readError
		}

		selectedIndexes, invalidAnswer := resolveChoices(answer, choices)
		if len(invalidAnswer) == 0 {
			return selectedIndexes, nil
		}
		if _, writeError := fmt.Fprintf(prompter.writer, invalidChoiceTemplateConstant, invalidAnswer, len(choices)); writeError != nil {
			return nil, writeError
		}
	}
}

// Input asks a free-form question. A blank answer returns defaultValue.
func (prompter *IOPrompter) Input(question string, defaultValue string) (string, error) {
	promptText := fmt.Sprintf(inputWithoutDefaultTemplateConstant, question)
	if len(defaultValue) > 0 {
		promptText = fmt.Sprintf(inputWithDefaultTemplateConstant, question, defaultValue)
	}
	if _, writeError := io.WriteString(prompter.writer, promptText); writeError != nil {
		return "", writeError
	}

	answer, readError := prompter.readLine()
	if readError != nil {
		return "", readError
	}
	if len(answer) == 0 {
		return defaultValue, nil
	}
	return answer, nil
}

func (prompter *IOPrompter) renderChoices(question string, choices []string) error {
	if _, writeError := fmt.Fprintf(prompter.writer, selectQuestionTemplateConstant, question); writeError != nil {
		return writeError
	}
	for choiceIndex, choice := range choices {
		if _, writeError := fmt.Fprintf(prompter.writer, selectChoiceTemplateConstant, choiceIndex+1, choice); writeError != nil {
			return writeError
		}
	}
	return nil
}

// readLine returns the trimmed next line. A final line without a newline is still returned.
func (prompter *IOPrompter) readLine() (string, error) {
	line, readError := prompter.reader.ReadString('\n')
	if readError != nil {
		if !errors.Is(readError, io.EOF) {
			return "", readError
		}
		if len(line) == 0 {
			return "", ErrInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}

func resolveChoice(answer string, choices []string) (int, bool) {
	trimmedAnswer := strings.TrimSpace(answer)
	if choiceNumber, parseError := strconv.Atoi(trimmedAnswer); parseError == nil {
		if choiceNumber >= 1 && choiceNumber <= len(choices) {
			return choiceNumber - 1, true
		}
		return 0, false
	}
	for choiceIndex, choice := range choices {
		if choice == trimmedAnswer {
			return choiceIndex, true
		}
	}
	return 0, false
}

// resolveChoices parses a comma-separated answer. The first unrecognized entry is returned when present.
func resolveChoices(answer string, choices []string) ([]int, string) {
	selectedIndexes := make([]int, 0)
	seenIndexes := make(map[int]struct{})
	for _, candidate := range strings.Split(answer, choiceSeparatorConstant) {
		trimmedCandidate := strings.TrimSpace(candidate)
		if len(trimmedCandidate) == 0 {
			continue
		}
		choiceIndex, valid := resolveChoice(trimmedCandidate, choices)
		if !valid {
			return nil, trimmedCandidate
		}
		if _, seen := seenIndexes[choiceIndex]; seen {
			continue
		}
		seenIndexes[choiceIndex] = struct{}{}
		selectedIndexes = append(selectedIndexes, choiceIndex)
	}
	return selectedIndexes, ""
}
