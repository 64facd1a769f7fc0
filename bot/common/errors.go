package common

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

const genericErrorMessage = "Something went wrong. Please try again later."

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Err         error  // Underlying error
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// IsSystem reports whether the error was caused by the bot rather than the user
func (e *BotError) IsSystem() bool {
	return e.Err != nil
}

// NewUserError creates an error for user-caused issues (validation, insufficient funds, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewSystemError creates an error for system issues (storage, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: genericErrorMessage,
		LogMessage:  logMessage,
		Err:         err,
	}
}

// RespondWithError sends an error message as an interaction response
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending error response: %v", err)
	}
}

// FollowUpWithError sends an error message as a follow-up to a deferred interaction
func FollowUpWithError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	_, err := s.FollowupMessageCreate(i.Interaction, false, &discordgo.WebhookParams{
		Content: fmt.Sprintf("❌ %s", message),
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Errorf("Error sending follow-up error message: %v", err)
	}
}

// HandleError logs err and tells the user what went wrong. deferred selects
// a follow-up message instead of an interaction response.
func HandleError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, deferred bool) {
	message := logError(i, err)
	if deferred {
		FollowUpWithError(s, i, message)
	} else {
		RespondWithError(s, i, message)
	}
}

// EditWithError logs err and replaces a deferred response with the error message
func EditWithError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	message := logError(i, err)
	if editErr := EditResponse(s, i, fmt.Sprintf("❌ %s", message), nil); editErr != nil {
		log.Errorf("Error editing response with error message: %v", editErr)
	}
}

// logError logs err at a level matching its cause and returns the user message
func logError(i *discordgo.InteractionCreate, err error) string {
	fields := log.Fields{
		"user_id":     InteractionUserID(i),
		"interaction": InteractionName(i),
	}

	var botErr *BotError
	if !errors.As(err, &botErr) {
		fields["error"] = err.Error()
		log.WithFields(fields).Error("Unexpected error in bot interaction")
		return genericErrorMessage
	}

	fields["error"] = botErr.Error()
	fields["user_message"] = botErr.UserMessage
	if botErr.IsSystem() {
		log.WithFields(fields).Error(botErr.LogMessage)
	} else {
		log.WithFields(fields).Debug(botErr.LogMessage)
	}
	return botErr.UserMessage
}
