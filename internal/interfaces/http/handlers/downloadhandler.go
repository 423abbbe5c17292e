package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/planhaus/planhaus/internal/domain/catalog"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/infrastructure/auth"
	"github.com/planhaus/planhaus/internal/shared/logger"
	"github.com/planhaus/planhaus/internal/shared/utils"
)

// DownloadHandler redeems signed download tokens. The token itself is the
// entitlement check: it is only ever minted for the buyer of a completed
// order, and it expires on its own.
type DownloadHandler struct {
	jwtService *auth.JWTService
	planRepo   catalog.PlanRepository
	assetsBase string
	logger     logger.Interface
}

func NewDownloadHandler(jwtService *auth.JWTService, planRepo catalog.PlanRepository, assetsBase string, logger logger.Interface) *DownloadHandler {
	return &DownloadHandler{
		jwtService: jwtService,
		planRepo:   planRepo,
		assetsBase: assetsBase,
		logger:     logger,
	}
}

type downloadFileResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type downloadBundleResponse struct {
	OrderID   string                 `json:"order_id"`
	PlanID    string                 `json:"plan_id"`
	PlanTitle string                 `json:"plan_title"`
	Tier      string                 `json:"tier"`
	Files     []downloadFileResponse `json:"files"`
}

// GetBundle verifies a download token and returns the file manifest for the
// purchased tier.
// GET /api/v1/downloads?token=...
func (h *DownloadHandler) GetBundle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "download token is required")
		return
	}

	claims, err := h.jwtService.VerifyDownload(token)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "download link is invalid or has expired")
		return
	}

	plan, err := h.planRepo.GetBySID(c.Request.Context(), claims.PlanSID)
	if err != nil {
		h.logger.Errorw("failed to load plan for download", "error", err, "plan_sid", claims.PlanSID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to prepare download")
		return
	}
	if plan == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "plan files are no longer available")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", downloadBundleResponse{
		OrderID:   claims.OrderSID,
		PlanID:    plan.SID(),
		PlanTitle: plan.Title(),
		Tier:      claims.Tier,
		Files:     h.bundleFiles(plan.SID(), catalogVO.Tier(claims.Tier)),
	})
}

// bundleFiles lists the documents included in each tier. Higher tiers are a
// strict superset of the ones below.
func (h *DownloadHandler) bundleFiles(planSID string, tier catalogVO.Tier) []downloadFileResponse {
	files := []downloadFileResponse{
		{Name: "floor-plans.pdf", URL: h.assetURL(planSID, "floor-plans.pdf")},
	}

	if tier == catalogVO.TierStandard || tier == catalogVO.TierPremium {
		files = append(files,
			downloadFileResponse{Name: "elevations.pdf", URL: h.assetURL(planSID, "elevations.pdf")},
			downloadFileResponse{Name: "sections.pdf", URL: h.assetURL(planSID, "sections.pdf")},
		)
	}

	if tier == catalogVO.TierPremium {
		files = append(files,
			downloadFileResponse{Name: "structural-details.pdf", URL: h.assetURL(planSID, "structural-details.pdf")},
			downloadFileResponse{Name: "cad-drawings.dwg", URL: h.assetURL(planSID, "cad-drawings.dwg")},
			downloadFileResponse{Name: "bill-of-quantities.xlsx", URL: h.assetURL(planSID, "bill-of-quantities.xlsx")},
		)
	}

	return files
}

func (h *DownloadHandler) assetURL(planSID, name string) string {
	return fmt.Sprintf("%s/%s/%s", h.assetsBase, planSID, name)
}
