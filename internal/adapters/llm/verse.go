package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/lumenlabs/lumen/internal/domain"
	"github.com/lumenlabs/lumen/internal/observability"
)

// fallbackVerse is served whenever verse generation fails.
var fallbackVerse = domain.DailyVerse{
	Text:      "For I know the plans I have for you, declares the Lord, plans for welfare and not for evil, to give you a future and a hope.",
	Reference: "Jeremiah 29:11",
}

const fallbackHoroscope = "The stars are quiet today. Focus on your inner peace and trust in your journey."

// DailyVerse implements domain.VerseGenerator. Failures degrade to the fixed
// fallback verse; the caller never sees an error.
func (g *GeminiClient) DailyVerse(ctx context.Context) (domain.DailyVerse, error) {
	log := observability.WithComponent("llm")

	res, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{genai.NewContentFromText(dailyVersePrompt, genai.RoleUser)},
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		log.Warn().Err(err).Msg("daily verse generation failed, using fallback")
		return fallbackVerse, nil
	}

	text := res.Text()
	var verse domain.DailyVerse
	if text == "" || json.Unmarshal([]byte(text), &verse) != nil || verse.Text == "" {
		log.Warn().Msg("daily verse response unusable, using fallback")
		return fallbackVerse, nil
	}
	return verse, nil
}

// DailyHoroscope implements domain.HoroscopeGenerator using the Google
// Search tool so the reading reflects current astrological content, with
// grounding sources extracted from the response.
func (g *GeminiClient) DailyHoroscope(ctx context.Context, sign string) (domain.Horoscope, error) {
	today := time.Now().Format("Monday, January 2, 2006")
	prompt := fmt.Sprintf(
		"Find the daily horoscope for %s for today, %s. Provide a warm, encouraging message of the day based on the current astrological influences. Summarize the key themes for love, career, and personal growth. Use search to find accurate current information.",
		sign, today,
	)

	res, err := g.client.Models.GenerateContent(ctx, g.modelName,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		},
	)
	if err != nil || res.Text() == "" {
		log := observability.WithComponent("llm")
		log.Warn().Err(err).Msg("horoscope generation failed, using fallback")
		return domain.Horoscope{Text: fallbackHoroscope}, nil
	}

	out := domain.Horoscope{Text: res.Text()}
	if len(res.Candidates) > 0 && res.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range res.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web != nil {
				out.Sources = append(out.Sources, domain.Source{URI: chunk.Web.URI, Title: chunk.Web.Title})
			}
		}
	}
	return out, nil
}
