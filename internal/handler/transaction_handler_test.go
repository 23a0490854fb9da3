package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mbruton/pennywise/internal/domain"
	"github.com/mbruton/pennywise/internal/service"
	"github.com/mbruton/pennywise/internal/testutil"
)

func newTransactionHandler() (*TransactionHandler, *testutil.MockTransactionRepository) {
	transactionRepo := testutil.NewMockTransactionRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.Transactions = transactionRepo
	categoryRepo.AddCategory(&domain.Category{Type: domain.TransactionTypeExpense, Name: "Food"})
	return NewTransactionHandler(service.NewTransactionService(transactionRepo, categoryRepo)), transactionRepo
}

func TestCreateTransaction_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler()

	body := `{"type":"expense","amount":"12.50","description":"Lunch","category":"Food","date":"2025-01-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var response TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Amount != "12.50" {
		t.Errorf("Expected amount '12.50', got %s", response.Amount)
	}
	if response.Date != "2025-01-15" {
		t.Errorf("Expected date '2025-01-15', got %s", response.Date)
	}
	if len(repo.Transactions) != 1 {
		t.Errorf("Expected 1 stored transaction, got %d", len(repo.Transactions))
	}
}

func TestCreateTransaction_BadAmount(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	body := `{"type":"expense","amount":"abc","description":"Lunch","category":"Food","date":"2025-01-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestCreateTransaction_UnknownCategory(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	body := `{"type":"expense","amount":"10","description":"Bet","category":"Gambling","date":"2025-01-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetTransaction_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/99", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("99")

	if err := handler.GetTransaction(c); err != nil {
		t.Fatalf("Expected JSON response, got error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetTransactions_FilterByDateRange(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	create := func(body string) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		if err := handler.CreateTransaction(e.NewContext(req, rec)); err != nil || rec.Code != http.StatusCreated {
			t.Fatalf("Seed create failed: err=%v code=%d", err, rec.Code)
		}
	}
	create(`{"type":"expense","amount":"10","description":"January","category":"Food","date":"2025-01-15"}`)
	create(`{"type":"expense","amount":"20","description":"February","category":"Food","date":"2025-02-15"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?startDate=2025-02-01&endDate=2025-02-28", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetTransactions(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var responses []TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &responses); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("Expected 1 transaction, got %d", len(responses))
	}
	if responses[0].Description != "February" {
		t.Errorf("Expected the February transaction, got %s", responses[0].Description)
	}
}

func TestDeleteTransaction_Success(t *testing.T) {
	e := echo.New()
	handler, repo := newTransactionHandler()

	body := `{"type":"expense","amount":"10","description":"Lunch","category":"Food","date":"2025-01-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := handler.CreateTransaction(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Seed create failed: %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/transactions/1", nil)
	rec = httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.DeleteTransaction(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", rec.Code)
	}
	if len(repo.Transactions) != 0 {
		t.Errorf("Expected 0 stored transactions, got %d", len(repo.Transactions))
	}
}
