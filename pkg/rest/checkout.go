package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"

	"supermarket-checkout/pkg/model"
	"supermarket-checkout/pkg/pricing"
	"supermarket-checkout/pkg/workflow"
)

type Server struct {
	client            client.Client
	tokenDb           TokenDb
	basketIdGenerator model.BasketIdGenerator
	market            *pricing.Supermarket
	taskQueue         string
	logger            zerolog.Logger
}

func NewServer(client client.Client, tokenDb TokenDb, basketIdGenerator model.BasketIdGenerator, taskQueue string, logger zerolog.Logger) *Server {
	return &Server{
		client:            client,
		tokenDb:           tokenDb,
		basketIdGenerator: basketIdGenerator,
		market:            pricing.NewDefaultSupermarket(),
		taskQueue:         taskQueue,
		logger:            logger,
	}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Post("/checkout", s.handleCheckout)
	r.Group(func(r chi.Router) {
		r.Use(s.withAuth)
		r.Post("/baskets", s.handleOpenBasket)
		r.Get("/basket/{id}", s.handleGetBasket)
		r.Post("/basket/{id}/scans", s.handleScanItems)
		r.Patch("/basket/{id}/close", s.handleCloseBasket)
	})
	return r
}

func (s *Server) Shutdown(force context.Context) {
	if s.client != nil {
		s.client.Close()
	}
	s.tokenDb.Close(force)
}

func CreateWorkflowId(basketId string) string {
	return fmt.Sprintf("checkout-basket-%v", basketId)
}

const TotalOkYes = "y"
const TotalOkNo = "n"

func getOkString(total pricing.TotalPrice) string {
	if total.Ok {
		return TotalOkYes
	} else {
		return TotalOkNo
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

type CheckoutRequest struct {
	Items string `json:"items"`
}

type CheckoutResponse struct {
	Total   int64  `json:"total"`
	TotalOk string `json:"total_ok"` // y/n instead of true/false
}

// handleCheckout prices a full basket in one shot with the default rule set.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var checkoutRequest CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&checkoutRequest); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	total := s.market.CheckoutTotal(checkoutRequest.Items)
	s.writeJSON(w, http.StatusOK, CheckoutResponse{
		Total:   total.Total,
		TotalOk: getOkString(total),
	})
}

type OpenBasketRequest struct {
	CloseTime time.Time `json:"close_time"`
}

type OpenBasketResponse struct {
	Id string `json:"id"`
}

func (s *Server) handleOpenBasket(w http.ResponseWriter, r *http.Request) {
	customerId, ok := customerIdFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "failed to get customer id")
		return
	}
	var openBasketRequest OpenBasketRequest
	if err := json.NewDecoder(r.Body).Decode(&openBasketRequest); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	basketId := s.basketIdGenerator.New()
	options := client.StartWorkflowOptions{
		ID:        CreateWorkflowId(basketId),
		TaskQueue: s.taskQueue,
	}
	basketInfo := model.BasketInfo{
		Id: model.BasketId{
			CustomerId: customerId,
			Id:         basketId,
		},
		Status: model.Open,
	}
	duration := time.Until(openBasketRequest.CloseTime)
	wr, err := s.client.ExecuteWorkflow(r.Context(), options, workflow.CheckoutWorkflow, basketInfo, duration)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to execute workflow")
		s.writeError(w, http.StatusInternalServerError, "workflow failed to execute")
		return
	}
	runId := wr.GetRunID()
	s.logger.Info().Str("id", wr.GetID()).Str("run_id", runId).Msg("started workflow")

	// Get the intermediate basket state
	var encodedResult converter.EncodedValue
	for i := 0; i < 10; i++ { // HACK ugly wait for the workflow to reach registration of the query handler
		encodedResult, err = s.client.QueryWorkflow(r.Context(), options.ID, runId, workflow.GetPendingBasketStateQuery)
		if err == nil {
			break
		}
		s.logger.Error().Err(err).Int("attempt", i).Msg("failed to query workflow")
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "failed to query intermediate state")
		return
	}
	var currentState workflow.CheckoutState
	err = encodedResult.Get(&currentState)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to decode intermediate state")
		s.writeError(w, http.StatusInternalServerError, "failed to decode intermediate state")
		return
	} else if currentState.BasketInfo.Id.Id != basketId {
		s.logger.Error().Str("basket_id", basketId).Str("state_id", currentState.BasketInfo.Id.Id).Msg("failed to query correct workflow")
		s.writeError(w, http.StatusInternalServerError, "failed to query correct workflow")
		return
	}
	s.writeJSON(w, http.StatusOK, OpenBasketResponse{Id: basketId})
}

type GetBasketResponse struct {
	Id        string             `json:"id"`
	Status    model.BasketStatus `json:"status"` // open(0)/closed(1)
	ScanCount uint64             `json:"scan_count"`
	Items     string             `json:"items"`
	TotalOk   string             `json:"total_ok"` // y/n instead of true/false
	Total     int64              `json:"total"`
}

func (s *Server) handleGetBasket(w http.ResponseWriter, r *http.Request) {
	customerId, ok := customerIdFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "failed to get customer id")
		return
	}
	id := chi.URLParam(r, "id")

	encodedResult, err := s.client.QueryWorkflow(r.Context(), CreateWorkflowId(id), "", workflow.GetPendingBasketStateQuery)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query workflow")
		s.writeError(w, http.StatusNotFound, "failed to query workflow")
		return
	}
	var currentState workflow.CheckoutState
	err = encodedResult.Get(&currentState)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to decode intermediate state")
		s.writeError(w, http.StatusInternalServerError, "failed to decode intermediate state")
		return
	} else if currentState.BasketInfo.Id.Id != id {
		s.logger.Error().Str("id", id).Str("state_id", currentState.BasketInfo.Id.Id).Msg("failed to query correct workflow")
		s.writeError(w, http.StatusInternalServerError, "failed to query correct workflow")
		return
	} else if currentState.BasketInfo.Id.CustomerId != customerId {
		s.logger.Error().Str("customer_id", string(customerId)).Str("state_customer_id", string(currentState.BasketInfo.Id.CustomerId)).Msg("failed to query workflow of correct customer")
		s.writeError(w, http.StatusInternalServerError, "failed to query correct workflow")
		return
	}

	s.writeJSON(w, http.StatusOK, GetBasketResponse{
		Id:        id,
		Status:    currentState.BasketInfo.Status,
		ScanCount: currentState.ScanCount,
		Items:     currentState.Items,
		TotalOk:   getOkString(currentState.Total),
		Total:     currentState.Total.Total,
	})
}

type ScanItemsRequest struct {
	Items string `json:"items"`
}

type ScanItemsResponse struct {
	Id        string `json:"id"`
	ScanCount uint64 `json:"scan_count"`
	TotalOk   string `json:"total_ok"` // y/n instead of true/false
	Total     int64  `json:"total"`
}

func (s *Server) handleScanItems(w http.ResponseWriter, r *http.Request) {
	customerId, ok := customerIdFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "failed to get customer id")
		return
	}
	id := chi.URLParam(r, "id")
	var scanItemsRequest ScanItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&scanItemsRequest); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updateId := s.basketIdGenerator.New()
	scanId := s.basketIdGenerator.New()
	options := client.UpdateWorkflowOptions{
		UpdateID:   updateId,
		WorkflowID: CreateWorkflowId(id),
		UpdateName: workflow.ScanItemsUpdate,
		Args: []interface{}{
			model.Scan{
				Id: model.ScanId{
					BasketId: model.BasketId{CustomerId: customerId, Id: id},
					Id:       scanId,
				},
				Items: scanItemsRequest.Items,
			},
		},
		WaitForStage: client.WorkflowUpdateStageCompleted,
	}

	updateHandle, err := s.client.UpdateWorkflow(r.Context(), options)
	if err != nil {
		s.logger.Error().Err(err).Str("basket_id", id).Msg("failed to scan items")
		s.writeError(w, http.StatusInternalServerError, "failed to scan items")
		return
	}
	var updatedState workflow.CheckoutState
	err = updateHandle.Get(r.Context(), &updatedState)
	if err != nil {
		s.logger.Error().Err(err).Str("basket_id", id).Msg("failed to get updated workflow state")
		s.writeError(w, http.StatusInternalServerError, "failed to get updated workflow state")
		return
	}
	s.logger.Info().Str("id", id).Msg("scanned items into workflow")
	s.writeJSON(w, http.StatusOK, ScanItemsResponse{
		Id:        scanId,
		ScanCount: updatedState.ScanCount,
		TotalOk:   getOkString(updatedState.Total),
		Total:     updatedState.Total.Total,
	})
}

type CloseBasketResponse struct {
	ScanCount uint64 `json:"scan_count"`
	Items     string `json:"items"`
	TotalOk   string `json:"total_ok"` // y/n instead of true/false
	Total     int64  `json:"total"`
}

func (s *Server) handleCloseBasket(w http.ResponseWriter, r *http.Request) {
	_, ok := customerIdFrom(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "failed to get customer id")
		return
	}
	id := chi.URLParam(r, "id")

	err := s.client.SignalWorkflow(r.Context(), CreateWorkflowId(id), "", workflow.CloseBasketEarlySignal, "API initiated")
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to close workflow")
		s.writeError(w, http.StatusInternalServerError, "workflow failed to close")
		return
	}
	s.logger.Info().Str("id", id).Msg("closed workflow")
	wr := s.client.GetWorkflow(r.Context(), CreateWorkflowId(id), "")
	var finalState workflow.CheckoutState
	err = wr.Get(r.Context(), &finalState)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get workflow final state")
		s.writeError(w, http.StatusInternalServerError, "failed to get workflow final state")
		return
	}
	s.writeJSON(w, http.StatusOK, CloseBasketResponse{
		ScanCount: finalState.ScanCount,
		Items:     finalState.Items,
		TotalOk:   getOkString(finalState.Total),
		Total:     finalState.Total.Total,
	})
}
