package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"go-hireloop-client/internal/api"
	"go-hireloop-client/internal/models"
)

// runApply walks the application flow for one job: show the posting, pick the
// default resume, collect screening answers from stdin and submit.
func runApply(ctx context.Context, client *api.Client, jobID string) error {
	job, err := client.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("failed to load job %s: %w", jobID, err)
	}
	if !job.IsActive {
		return fmt.Errorf("job %q is no longer active", job.Title)
	}

	company := "Unknown Company"
	if job.Company != nil {
		company = job.Company.Name
	}
	fmt.Printf("Applying to %s at %s\n", job.Title, company)

	resume, err := client.DefaultResume(ctx)
	if err != nil {
		return fmt.Errorf("no usable resume, upload one with -upload-resume: %w", err)
	}
	fmt.Printf("Using resume: %s\n", resume.Name)

	reader := bufio.NewReader(os.Stdin)
	responses, err := collectAnswers(reader, job.ScreeningQuestions)
	if err != nil {
		return err
	}

	fmt.Print("Cover letter (optional, single line, enter to skip): ")
	cover, _ := reader.ReadString('\n')

	app, err := client.Apply(ctx, api.ApplyRequest{
		JobID:              job.ID,
		ResumeID:           resume.ID,
		CoverLetter:        strings.TrimSpace(cover),
		ScreeningResponses: responses,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Application submitted: %s (status %s)\n", app.ID, app.Status)
	fmt.Printf("Start the screening interview with -chat %s\n", app.ID)
	return nil
}

// collectAnswers prompts for each screening question. Required questions must
// get a non-empty answer; choice questions must match one of the options.
func collectAnswers(reader *bufio.Reader, questions []models.Question) ([]models.ScreeningResponse, error) {
	if len(questions) == 0 {
		return nil, nil
	}

	fmt.Printf("This job has %d screening question(s).\n", len(questions))
	responses := make([]models.ScreeningResponse, 0, len(questions))
	for i, q := range questions {
		for {
			fmt.Printf("[%d/%d] %s", i+1, len(questions), q.Text)
			if q.ResponseType == models.ResponseChoice && len(q.Choices) > 0 {
				fmt.Printf(" (%s)", strings.Join(q.Choices, " / "))
			}
			fmt.Print("\n> ")

			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				return nil, fmt.Errorf("failed to read answer: %w", err)
			}
			answer := strings.TrimSpace(line)

			if answer == "" {
				if q.Required {
					fmt.Println("An answer is required.")
					continue
				}
				break
			}
			if q.ResponseType == models.ResponseChoice && len(q.Choices) > 0 && !validChoice(answer, q.Choices) {
				fmt.Printf("Pick one of: %s\n", strings.Join(q.Choices, ", "))
				continue
			}

			responses = append(responses, models.ScreeningResponse{
				Question: q.Text,
				Response: answer,
			})
			break
		}
	}
	return responses, nil
}

func validChoice(answer string, choices []string) bool {
	for _, c := range choices {
		if strings.EqualFold(answer, c) {
			return true
		}
	}
	return false
}
