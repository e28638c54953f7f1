package controllers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/apperrors"
	"storefront-backend/models"
	"storefront-backend/services"
	"storefront-backend/store"
)

// respondError classifies a domain error onto the application failure
// taxonomy and attaches it to the context; the apperrors middleware
// renders the response.
func respondError(c *gin.Context, err error) {
	_ = c.Error(classify(err))
}

// classify maps domain errors onto apperrors sentinels. Validation and
// blocked-action failures never reach the backend, so they carry 4xx;
// a refused sale submission is a gateway failure, everything else is
// treated as internal.
func classify(err error) *apperrors.Error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.Wrap(apperrors.ErrNotFound, err)
	case errors.Is(err, store.ErrAdminUndeletable):
		return apperrors.Wrap(apperrors.ErrBlockedAction, err)
	case errors.Is(err, store.ErrDuplicateCode),
		errors.Is(err, models.ErrNameRequired),
		errors.Is(err, models.ErrNegativePrice),
		errors.Is(err, models.ErrNegativeCost),
		errors.Is(err, models.ErrNegativeStock),
		errors.Is(err, models.ErrPriceBelowCost),
		errors.Is(err, models.ErrNegativeDiscount),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrPaymentNotAccepted),
		errors.Is(err, services.ErrApprovalCode),
		errors.Is(err, services.ErrSupplierRequired),
		errors.Is(err, services.ErrNoPurchaseLines),
		errors.Is(err, services.ErrBadLineIndex),
		errors.Is(err, services.ErrBadQuantity),
		errors.Is(err, services.ErrBadUnitCost),
		errors.Is(err, services.ErrPasswordRequired):
		return apperrors.Wrap(apperrors.ErrValidation, err)
	case errors.Is(err, services.ErrRecoveryCode),
		errors.Is(err, services.ErrRecoveryNotFound):
		return apperrors.Wrap(apperrors.ErrUnprocessable, err)
	case errors.Is(err, services.ErrCheckoutInProgress):
		return apperrors.Wrap(apperrors.ErrConflict, err)
	case errors.Is(err, services.ErrSaleNotRecorded):
		return apperrors.Wrap(apperrors.ErrGatewayFailure, err)
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// resultFields annotates a mutation response with its remote outcome, so
// clients can tell a confirmed write from a local-only one.
func resultFields(res store.Result) gin.H {
	h := gin.H{"confirmed": res.Confirmed}
	if res.RemoteErr != nil {
		h["remoteError"] = res.RemoteErr.Error()
	}
	return h
}

// parseDateRange reads optional start/end query parameters (YYYY-MM-DD).
func parseDateRange(c *gin.Context) (services.DateRange, error) {
	var r services.DateRange
	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return r, errors.New("invalid start date, expected YYYY-MM-DD")
		}
		r.Start = t
	}
	if e := c.Query("end"); e != "" {
		t, err := time.Parse("2006-01-02", e)
		if err != nil {
			return r, errors.New("invalid end date, expected YYYY-MM-DD")
		}
		r.End = t
	}
	return r, nil
}
