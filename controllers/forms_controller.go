package controllers

import (
	"context"
	"maps"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wingsengineering/wingsweb/catalog"
	"github.com/wingsengineering/wingsweb/dto"
	"github.com/wingsengineering/wingsweb/localization"
	"github.com/wingsengineering/wingsweb/metrics"
	"github.com/wingsengineering/wingsweb/models"
	"github.com/wingsengineering/wingsweb/utils"
)

// submission is a validated form on its way to the relay.
type submission struct {
	kind       models.SubmissionKind
	reference  string
	subject    string
	name       string
	email      string
	phone      string
	company    string
	fields     map[string]string
	lines      []catalog.QuoteLineItem
	validUntil *time.Time
}

// bindForm decodes and validates a visitor form. On failure it writes the
// response, keeping the submitted data so the visitor can correct it.
func (a *App) bindForm(c *gin.Context, loc *localization.Localizer, form dto.Form) bool {
	if err := c.ShouldBind(form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": loc.T("contact.form.invalid")})
		return false
	}
	if errs := a.Validator.Check(loc, form); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  loc.T("contact.form.invalid"),
			"fields": errs,
			"data":   form,
		})
		return false
	}
	return true
}

// relay forwards s and archives it. A relay failure writes the localized
// error with the submitted data and returns false; archive failures are
// only logged.
func (a *App) relay(c *gin.Context, loc *localization.Localizer, s submission, form any) bool {
	ctx := c.Request.Context()
	if err := a.Relay.Submit(ctx, s.subject, s.fields); err != nil {
		metrics.RecordSubmission(string(s.kind), "error")
		a.logger().Error("form relay failed", zap.String("kind", string(s.kind)), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": loc.T("contact.form.error"),
			"data":  form,
		})
		return false
	}
	metrics.RecordSubmission(string(s.kind), "ok")
	a.archive(ctx, loc, s)
	return true
}

func (a *App) archive(ctx context.Context, loc *localization.Localizer, s submission) {
	if a.Archive == nil {
		return
	}
	items := make([]models.SubmissionItem, 0, len(s.lines))
	for _, l := range s.lines {
		items = append(items, models.SubmissionItem{
			PartID:    l.PartID,
			Quantity:  l.Quantity,
			PartName:  l.Name,
			Brand:     l.Brand,
			UnitPrice: l.Price,
			Currency:  l.Currency,
		})
	}
	doc := &models.Submission{
		Kind:       s.kind,
		Reference:  s.reference,
		Subject:    s.subject,
		Language:   loc.Language().String(),
		FullName:   s.name,
		Email:      s.email,
		Phone:      s.phone,
		Company:    s.company,
		Fields:     s.fields,
		Items:      items,
		ValidUntil: s.validUntil,
	}
	if err := a.Archive.Insert(ctx, doc); err != nil {
		a.logger().Warn("failed to archive submission", zap.String("kind", string(s.kind)), zap.Error(err))
	}
}

// POST /api/contact
func (a *App) SubmitContact() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loc, ok := visitor(c)
		if !ok {
			return
		}
		var body dto.ContactFormDTO
		if !a.bindForm(c, loc, &body) {
			return
		}

		s := submission{
			kind:    models.SubmissionContact,
			subject: body.Subject(),
			name:    body.Name,
			email:   body.Email,
			phone:   body.Phone,
			company: body.Company,
			fields:  body.Fields(),
		}
		if !a.relay(c, loc, s, body) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": loc.T("contact.form.success")})
	}
}

// POST /api/quote
// The quote covers the product/service named in the body, the session
// cart, or both. The cart is emptied once the relay accepts the request.
func (a *App) SubmitQuote() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, loc, ok := visitor(c)
		if !ok {
			return
		}
		var body dto.QuoteRequestDTO
		if !a.bindForm(c, loc, &body) {
			return
		}
		lines := sess.Cart.Lines()
		if body.ProductService == "" && len(lines) == 0 {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  loc.T("contact.form.invalid"),
				"fields": dto.FieldErrors{"productService": dto.Required(loc)},
				"data":   body,
			})
			return
		}

		now := a.now()
		reference := utils.QuoteNumber(now)
		validUntil := now.Add(a.QuoteValidFor)

		fields := body.Fields()
		maps.Copy(fields, dto.CartFields(lines))
		fields["reference"] = reference
		fields["validUntil"] = validUntil.Format("2006-01-02")

		s := submission{
			kind:       models.SubmissionQuote,
			reference:  reference,
			subject:    body.Subject(len(lines)),
			name:       body.Name,
			email:      body.Email,
			phone:      body.Phone,
			company:    body.Company,
			fields:     fields,
			lines:      lines,
			validUntil: &validUntil,
		}
		if !a.relay(c, loc, s, body) {
			return
		}
		sess.Cart.Clear()

		c.JSON(http.StatusOK, gin.H{
			"message":    loc.T("modal.quote.success"),
			"reference":  reference,
			"validUntil": validUntil,
			"detail":     loc.T("modal.quote.reference", localization.Params{"reference": reference}),
		})
	}
}

// POST /api/booking
func (a *App) SubmitBooking() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loc, ok := visitor(c)
		if !ok {
			return
		}
		var body dto.BookingRequestDTO
		if !a.bindForm(c, loc, &body) {
			return
		}

		s := submission{
			kind:    models.SubmissionBooking,
			subject: body.Subject(),
			name:    body.Name,
			email:   body.Email,
			phone:   body.Phone,
			fields:  body.Fields(),
		}
		if !a.relay(c, loc, s, body) {
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": loc.T("modal.booking.success")})
	}
}

// GET /api/whatsapp?part=<id>
// Without a part the link carries the general greeting.
func (a *App) WhatsAppLink() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, loc, ok := visitor(c)
		if !ok {
			return
		}
		msg := loc.T("whatsapp.prefilledMessage")
		if id := c.Query("part"); id != "" {
			p, found := a.Snapshot.Find(id)
			if !found {
				c.JSON(http.StatusNotFound, gin.H{"error": "part not found"})
				return
			}
			msg = partMessage(loc, p)
		}
		c.JSON(http.StatusOK, gin.H{
			"url":     a.WhatsApp.Link(msg),
			"message": msg,
			"tooltip": loc.T("whatsapp.tooltip"),
		})
	}
}
