package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

type jsonResponse map[string]interface{}

// maxBodyBytes ограничивает размер тела формы.
const maxBodyBytes = 1_048_576 // 1MB

// readRawJSON читает тело запроса в нетипизированную карту. Нормализатор
// обязан переживать поля неверных типов, поэтому здесь нет ни строгой
// схемы, ни запрета лишних полей — отклоняется только синтаксически
// некорректный JSON.
func readRawJSON(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var raw map[string]interface{}
	err := json.NewDecoder(r.Body).Decode(&raw)
	switch {
	case err == nil:
		return raw, nil
	case errors.Is(err, io.EOF):
		return nil, errors.New("body must not be empty")
	case err.Error() == "http: request body too large":
		return nil, fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
	default:
		return nil, errors.New("body contains badly-formed JSON")
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func badRequestResponse(w http.ResponseWriter, err error) {
	_ = writeJSON(w, http.StatusBadRequest, jsonResponse{"success": false, "error": err.Error()})
}
