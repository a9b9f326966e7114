package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

const (
	PromptRoleCatalog    = "Match against the role catalog"
	PromptJobDescription = "Match against a job description file"
)

var (
	errNoJobDescription = errors.New("job description file is required")
	errStdinInteractive = errors.New("interactive mode needs the terminal; pass the resume as a file instead of stdin")
)

// validateInteractive rejects stdin input when prompts will also read the terminal.
func validateInteractive(resumePath string, interactive bool) error {
	if interactive && resumePath == "-" {
		return errStdinInteractive
	}
	return nil
}

// chooseJobDescription asks whether to match against a job description and
// returns its path, or "" for role-catalog mode. current prefills the path
// prompt.
func chooseJobDescription(current string) (string, error) {
	modePrompt := promptui.Select{
		Label: "How should the resume be matched?",
		Items: []string{PromptRoleCatalog, PromptJobDescription},
	}

	_, mode, err := modePrompt.Run()
	if err != nil {
		return "", err
	}

	if mode == PromptRoleCatalog {
		return "", nil
	}

	pathPrompt := promptui.Prompt{
		Label:    "Job description file",
		Default:  current,
		Validate: validateJobFile,
	}

	path, err := pathPrompt.Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

func validateJobFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errNoJobDescription
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot use %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
