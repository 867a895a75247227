//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"groupmix/internal/model"
	"groupmix/internal/roster"
	"groupmix/internal/search"
)

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

type optimizeRequest struct {
	Participants json.RawMessage `json:"participants"`
	Groups       int             `json:"groups"`
	Iterations   int             `json:"iterations"`
	Annealing    bool            `json:"annealing"`
	Schedule     string          `json:"schedule"`
	Seed         int64           `json:"seed"`
	Mix          []string        `json:"mix"`
	Cluster      []string        `json:"cluster"`
}

type optimizeResponse struct {
	BestScore float64         `json:"bestScore"`
	Seed      int64           `json:"seed"`
	Groups    model.Partition `json:"groups"`
	Report    search.Report   `json:"report"`
}

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req optimizeRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return errResp(400, "invalid JSON: "+err.Error())
	}
	if len(req.Participants) == 0 {
		return errResp(400, "missing participants field")
	}

	participants, err := roster.LoadJSON(req.Participants)
	if err != nil {
		return errResp(400, err.Error())
	}
	objectives, err := runOptions{Mix: req.Mix, Cluster: req.Cluster}.objectives()
	if err != nil {
		return errResp(400, err.Error())
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opt, err := search.NewOptimizer(search.Config{
		Groups:     req.Groups,
		Iterations: req.Iterations,
		Objectives: objectives,
		Annealing:  req.Annealing,
		Schedule:   search.Schedule(req.Schedule),
		Seed:       seed,
	})
	if err != nil {
		return errResp(400, err.Error())
	}

	result, err := opt.Run(ctx, participants)
	if err != nil {
		return errResp(422, err.Error())
	}

	payload, err := json.Marshal(optimizeResponse{
		BestScore: result.BestScore,
		Seed:      seed,
		Groups:    result.Best,
		Report:    result.Report,
	})
	if err != nil {
		return errResp(500, err.Error())
	}

	return events.LambdaFunctionURLResponse{
		StatusCode: 200,
		Headers:    jsonHeader,
		Body:       string(payload),
	}, nil
}

func errResp(status int, msg string) (events.LambdaFunctionURLResponse, error) {
	payload, _ := json.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{
		StatusCode: status,
		Headers:    jsonHeader,
		Body:       string(payload),
	}, nil
}

func main() {
	lambda.Start(handler)
}
