package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astralisweb/astralis-client/internal/pkg/logger"
	"github.com/astralisweb/astralis-client/internal/viewmodels"
)

type ShopHandler struct {
	log *logger.Logger
	vm  *viewmodels.ShopViewModel
}

func NewShopHandler(log *logger.Logger, vm *viewmodels.ShopViewModel) *ShopHandler {
	return &ShopHandler{log: log.With("handler", "Shop"), vm: vm}
}

func (h *ShopHandler) List(c *gin.Context) {
	h.vm.Store.Update(func(s viewmodels.ShopState) viewmodels.ShopState {
		if page, err := strconv.Atoi(c.Query("page")); err == nil && page > 0 {
			s.Paging.Page = page
		} else {
			s.Paging.Page = 1
		}
		return s
	})
	h.vm.Load(c.Request.Context())

	st := h.vm.Store.Get()
	if st.Err != "" {
		RespondError(c, http.StatusBadGateway, "shop_unavailable", nil)
		return
	}
	RespondOK(c, gin.H{
		"products": st.Products,
		"cart":     st.CartLines,
		"page":     st.Paging.Page,
	})
}
