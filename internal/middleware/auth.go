package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// OwnerOnly restricts the bot to the configured Telegram user ids.
// The word list lives in a single slot, so every allowed user shares it.
// An empty list lets everyone through.
func OwnerOnly(ownerIDs []int64, logger *zap.Logger) tele.MiddlewareFunc {
	allowed := make(map[int64]struct{}, len(ownerIDs))
	for _, id := range ownerIDs {
		allowed[id] = struct{}{}
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if len(allowed) == 0 {
				return next(c)
			}

			sender := c.Sender()
			if sender == nil {
				return nil
			}

			if _, ok := allowed[sender.ID]; !ok {
				logger.Warn("Rejected update from unknown user",
					zap.Int64("user_id", sender.ID),
					zap.String("username", sender.Username),
				)
				if c.Callback() != nil {
					return c.Respond(&tele.CallbackResponse{Text: "This bot is private."})
				}
				return c.Send("This bot is private.")
			}

			return next(c)
		}
	}
}
