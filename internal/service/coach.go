package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msomdec/interview-prep/internal/domain"
)

// DefaultTypingDelay is how long the coach "types" before replying.
const DefaultTypingDelay = 1500 * time.Millisecond

// CoachRule maps any of its keywords to a reply. Keywords are lower case
// and matched as substrings.
type CoachRule struct {
	Name     string
	Keywords []string
	Reply    func(user *domain.User) string
}

func (r CoachRule) matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DefaultRuleName names the fallback reply.
const DefaultRuleName = "default"

// CoachRules is the ordered rule list. The first match wins.
var CoachRules = []CoachRule{
	{
		Name:     "roadmap",
		Keywords: []string{"roadmap", "path"},
		Reply: func(u *domain.User) string {
			in := ""
			if u.Domain != "" {
				in = " in " + u.Domain
			}
			return fmt.Sprintf("Based on your %s role%s, here's a recommended learning roadmap:\n\n"+
				"1. Master core %s skills\n"+
				"2. Build portfolio projects\n"+
				"3. Practice technical interviews daily\n"+
				"4. Learn system design principles\n"+
				"5. Network with industry professionals\n\n"+
				"Would you like me to elaborate on any of these steps?",
				roleOr(u, "job"), in, domainOr(u, "technical"))
		},
	},
	{
		Name:     "prepare",
		Keywords: []string{"prepare", "practice"},
		Reply: func(*domain.User) string {
			return "To prepare effectively:\n\n" +
				"1. Practice common interview questions daily\n" +
				"2. Use the STAR method for behavioral questions\n" +
				"3. Contribute to open-source projects\n" +
				"4. Create a portfolio showcasing your skills\n" +
				"5. Record yourself answering questions and review\n\n" +
				"Would you like some practice questions?"
		},
	},
	{
		Name:     "questions",
		Keywords: []string{"question", "ask"},
		Reply: func(*domain.User) string {
			return "Here are some common interview questions for your role:\n\n" +
				"1. Describe a challenging project you worked on\n" +
				"2. How do you handle disagreements with team members?\n" +
				"3. What's your approach to learning new technologies?\n" +
				"4. How do you prioritize tasks when dealing with multiple deadlines?\n" +
				"5. Where do you see yourself in 5 years?"
		},
	},
	{
		Name:     "thanks",
		Keywords: []string{"thank"},
		Reply: func(*domain.User) string {
			return "You're welcome! I'm here to help you succeed in your interviews. Is there anything else you'd like to know?"
		},
	},
}

func defaultReply(*domain.User) string {
	return "I'm here to help with your interview preparation. You can ask me about:\n\n" +
		"- Career roadmaps\n" +
		"- Interview preparation tips\n" +
		"- Practice questions\n" +
		"- Resume advice\n" +
		"- Technical concepts\n\n" +
		"How can I assist you today?"
}

func roleOr(u *domain.User, fallback string) string {
	if u == nil || u.Role == "" {
		return fallback
	}
	return string(u.Role)
}

func domainOr(u *domain.User, fallback string) string {
	if u == nil || u.Domain == "" {
		return fallback
	}
	return u.Domain
}

// MatchReply returns the name of the first matching rule and its reply
// text, falling back to the default reply.
func MatchReply(rules []CoachRule, user *domain.User, text string) (string, string) {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return r.Name, r.Reply(user)
		}
	}
	return DefaultRuleName, defaultReply(user)
}

// CoachObserver is notified of every delivered coach reply.
type CoachObserver interface {
	CoachReplied(rule string)
}

// CoachService answers chat messages with canned, keyword-matched replies.
type CoachService struct {
	rules    []CoachRule
	chats    domain.ChatRepository
	limiter  *KeyedLimiter
	delay    time.Duration
	observer CoachObserver
}

// NewCoachService creates a new CoachService. chats, limiter and observer
// may be nil.
func NewCoachService(chats domain.ChatRepository, limiter *KeyedLimiter, delay time.Duration, observer CoachObserver) *CoachService {
	return &CoachService{
		rules:    CoachRules,
		chats:    chats,
		limiter:  limiter,
		delay:    delay,
		observer: observer,
	}
}

// Greeting returns the opening message personalised for user.
func (s *CoachService) Greeting(user *domain.User) domain.ChatMessage {
	name := "there"
	if user != nil && user.FullName != "" {
		name = user.FullName
	}
	return domain.ChatMessage{
		ID: "greeting",
		Text: fmt.Sprintf("Hello %s! 👋 I'm your interview coach. I can help you prepare for your %s interviews. How can I assist you today?",
			name, roleOr(user, "job")),
		Sender:    domain.SenderBot,
		Timestamp: time.Now().UTC(),
	}
}

// Send records the user's message and starts the reply. It returns the
// stored user message together with the reply channel.
func (s *CoachService) Send(ctx context.Context, user *domain.User, text string) (domain.ChatMessage, <-chan domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if err := s.admit(user, text); err != nil {
		return domain.ChatMessage{}, nil, err
	}

	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    domain.SenderUser,
		Timestamp: time.Now().UTC(),
	}
	if s.chats != nil {
		if err := s.chats.Append(ctx, user.ID, msg); err != nil {
			slog.Error("store coach message", "user_id", user.ID, "error", err)
		}
	}
	return msg, s.reply(ctx, user, text), nil
}

// Respond starts an asynchronous reply to text. The returned channel yields
// exactly one bot message after the typing delay, then closes. If ctx is
// done first the channel closes without a message.
func (s *CoachService) Respond(ctx context.Context, user *domain.User, text string) (<-chan domain.ChatMessage, error) {
	if err := s.admit(user, text); err != nil {
		return nil, err
	}
	return s.reply(ctx, user, text), nil
}

func (s *CoachService) admit(user *domain.User, text string) error {
	if user == nil {
		return domain.ErrUnauthorized
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: message is empty", domain.ErrInvalidInput)
	}
	if s.limiter != nil && !s.limiter.Allow(user.ID) {
		return domain.ErrRateLimited
	}
	return nil
}

func (s *CoachService) reply(ctx context.Context, user *domain.User, text string) <-chan domain.ChatMessage {
	rule, reply := MatchReply(s.rules, user, text)
	out := make(chan domain.ChatMessage, 1)

	go func() {
		defer close(out)

		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		msg := domain.ChatMessage{
			ID:        uuid.NewString(),
			Text:      reply,
			Sender:    domain.SenderBot,
			Timestamp: time.Now().UTC(),
		}
		if s.chats != nil {
			if err := s.chats.Append(ctx, user.ID, msg); err != nil {
				slog.Error("store coach reply", "user_id", user.ID, "error", err)
			}
		}
		if s.observer != nil {
			s.observer.CoachReplied(rule)
		}
		out <- msg
	}()

	return out
}

// History returns the user's most recent coach messages, oldest first.
func (s *CoachService) History(ctx context.Context, userID string, limit int) ([]domain.ChatMessage, error) {
	if s.chats == nil {
		return []domain.ChatMessage{}, nil
	}
	msgs, err := s.chats.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list coach messages: %w", err)
	}
	return msgs, nil
}
