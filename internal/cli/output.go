package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case PlayerListResult:
		o.printPlayerList(v)
	case StatsResult:
		o.printStats(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// PlayerListResult response type (matches API)
type PlayerListResult struct {
	Players []string `json:"players"`
}

// StatsResult response type
type StatsResult struct {
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayerList(p PlayerListResult) {
	if len(p.Players) == 0 {
		fmt.Println("No players online")
		return
	}
	fmt.Printf("Online players (%d):\n", len(p.Players))
	for _, name := range p.Players {
		fmt.Printf("  - %s\n", name)
	}
}

func (o *Output) printStats(s StatsResult) {
	total := s.Wins + s.Losses
	fmt.Printf("Player: %s\n", s.Name)
	fmt.Printf("Wins: %d\n", s.Wins)
	fmt.Printf("Losses: %d\n", s.Losses)
	if total > 0 {
		fmt.Printf("Win rate: %.0f%%\n", 100*float64(s.Wins)/float64(total))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", strings.TrimSpace(h.Status))
}
