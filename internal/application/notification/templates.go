package notification

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/assetflow/assetflow/internal/domain/allocation"
	"github.com/assetflow/assetflow/internal/domain/review"
	"github.com/assetflow/assetflow/internal/shared/biztime"
)

func formatDeadline(d *time.Time) string {
	if d == nil {
		return "none"
	}
	return d.In(biztime.Location()).Format("2006-01-02 15:04 MST")
}

func formatIDs(ids []uint) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("#%d", id))
	}
	return strings.Join(parts, ", ")
}

func listCreatedMessage(to, name string, e allocation.ListCreatedEvent) Message {
	subject := fmt.Sprintf("New allocation: %s (%d assets)", e.ListName, len(e.AssetIDs))
	plain := fmt.Sprintf(`Hi %s,

You have been allocated %d asset(s) in list %s.

Assets: %s
Deadline: %s
Bonus: %.2f
`, name, len(e.AssetIDs), e.ListName, formatIDs(e.AssetIDs), formatDeadline(e.Deadline), e.Bonus)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>New allocation</h2>
			<p>Hi %s,</p>
			<p>You have been allocated <strong>%d</strong> asset(s) in list <strong>%s</strong>.</p>
			<p>Assets: %s</p>
			<p>Deadline: %s<br>Bonus: %.2f</p>
		</body>
		</html>
	`, html.EscapeString(name), len(e.AssetIDs), html.EscapeString(e.ListName),
		formatIDs(e.AssetIDs), formatDeadline(e.Deadline), e.Bonus)

	return Message{To: to, Subject: subject, HTMLBody: htmlBody, PlainBody: plain}
}

func provisionalQAMessage(to, name string, e allocation.ProvisionalQAAssignedEvent) Message {
	subject := fmt.Sprintf("QA review assigned: %d asset(s)", len(e.AssetIDs))
	plain := fmt.Sprintf(`Hi %s,

You now review the following asset(s) in place of the default QA: %s
`, name, formatIDs(e.AssetIDs))

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>QA review assigned</h2>
			<p>Hi %s,</p>
			<p>You now review the following asset(s) in place of the default QA: %s</p>
		</body>
		</html>
	`, html.EscapeString(name), formatIDs(e.AssetIDs))

	return Message{To: to, Subject: subject, HTMLBody: htmlBody, PlainBody: plain}
}

func invitationMessage(inviter string, e review.InvitationCreatedEvent) Message {
	subject := fmt.Sprintf("%s invited you to review %d asset(s)", inviter, e.AssetCount)
	expires := e.ExpiresAt.In(biztime.Location()).Format("2006-01-02 15:04 MST")

	plain := fmt.Sprintf(`%s invited you to review %d asset(s).

%s
Open the review: %s

This link expires on %s.
`, inviter, e.AssetCount, e.Message, e.ReviewURL, expires)

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Review request</h2>
			<p>%s invited you to review %d asset(s).</p>
			<p>%s</p>
			<p><a href="%s">Open the review</a></p>
			<p>Or copy and paste this URL into your browser:</p>
			<p>%s</p>
			<p>This link expires on %s.</p>
		</body>
		</html>
	`, html.EscapeString(inviter), e.AssetCount, html.EscapeString(e.Message),
		e.ReviewURL, e.ReviewURL, expires)

	return Message{To: e.RecipientEmail, Subject: subject, HTMLBody: htmlBody, PlainBody: plain}
}

func reviewSubmittedMessage(to string, e review.ReviewSubmittedEvent) Message {
	subject := fmt.Sprintf("Client feedback from %s", e.RecipientEmail)
	plain := fmt.Sprintf(`%s responded to your review link.

Approved: %s
Revision requested: %s
`, e.RecipientEmail, orNone(formatIDs(e.Approved)), orNone(formatIDs(e.Revisions)))

	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Client feedback</h2>
			<p>%s responded to your review link.</p>
			<p>Approved: %s<br>Revision requested: %s</p>
		</body>
		</html>
	`, html.EscapeString(e.RecipientEmail), orNone(formatIDs(e.Approved)), orNone(formatIDs(e.Revisions)))

	return Message{To: to, Subject: subject, HTMLBody: htmlBody, PlainBody: plain}
}

func reviewCompletedMessage(to string, e review.ReviewCompletedEvent) Message {
	subject := fmt.Sprintf("Review completed by %s", e.RecipientEmail)
	plain := fmt.Sprintf("%s has responded to all %d asset(s) in your review link.\n", e.RecipientEmail, e.AssetCount)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Review completed</h2>
			<p>%s has responded to all %d asset(s) in your review link.</p>
		</body>
		</html>
	`, html.EscapeString(e.RecipientEmail), e.AssetCount)

	return Message{To: to, Subject: subject, HTMLBody: htmlBody, PlainBody: plain}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
