package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// E2E contra el router completo con storage en memoria.

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(New(Options{}))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func mustStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s: status = %d, want %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want)
	}
}

func futureDate(daysAhead int) string {
	return time.Now().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/health", nil)
	mustStatus(t, resp, http.StatusOK)
	if body["status"] != "ok" {
		t.Errorf("body = %v, want status ok", body)
	}
}

func TestSchedulingFlow(t *testing.T) {
	srv := newTestServer(t)

	// Alta de cliente, mascota y veterinarios.
	resp, client := doJSON(t, http.MethodPost, srv.URL+"/clients", map[string]any{
		"name": "ana garcía", "dni": "12345678Z", "phone": "600123456",
	})
	mustStatus(t, resp, http.StatusCreated)
	clientID := client["id"].(string)
	if client["name"] != "Ana García" {
		t.Errorf("client name = %v, want formatted", client["name"])
	}

	resp, pet := doJSON(t, http.MethodPost, srv.URL+"/pets", map[string]any{
		"name": "Rocky", "species": "dog", "client_id": clientID,
	})
	mustStatus(t, resp, http.StatusCreated)
	petID := pet["id"].(string)

	resp, vet := doJSON(t, http.MethodPost, srv.URL+"/vets", map[string]any{
		"name": "Dra. Ruiz", "dni": "87654321X", "specialty": "surgery",
	})
	mustStatus(t, resp, http.StatusCreated)
	vetID := vet["id"].(string)

	day := futureDate(2)

	// Cita válida.
	resp, appt := doJSON(t, http.MethodPost, srv.URL+"/appointments", map[string]any{
		"pet_id": petID, "vet_id": vetID, "date": day, "time": "9:30", "reason": "vacunación",
	})
	mustStatus(t, resp, http.StatusCreated)
	apptID := appt["id"].(string)
	if appt["time"] != "09:30" {
		t.Errorf("time = %v, want canonical 09:30", appt["time"])
	}
	if appt["status"] != "Pending" {
		t.Errorf("status = %v, want Pending", appt["status"])
	}

	// Mismo slot con el mismo veterinario: 409.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/appointments", map[string]any{
		"pet_id": petID, "vet_id": vetID, "date": day, "time": "09:30",
	})
	mustStatus(t, resp, http.StatusConflict)

	// Fuera de horario: 400.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/appointments", map[string]any{
		"pet_id": petID, "vet_id": vetID, "date": day, "time": "18:00",
	})
	mustStatus(t, resp, http.StatusBadRequest)

	// Mascota inexistente: 404.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/appointments", map[string]any{
		"pet_id": "ghost", "vet_id": vetID, "date": day, "time": "11:00",
	})
	mustStatus(t, resp, http.StatusNotFound)

	// Cancelar libera el slot.
	resp, cancelled := doJSON(t, http.MethodPost, srv.URL+"/appointments/"+apptID+"/cancel", nil)
	mustStatus(t, resp, http.StatusOK)
	if cancelled["status"] != "Cancelled" {
		t.Errorf("status = %v, want Cancelled", cancelled["status"])
	}

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/appointments", map[string]any{
		"pet_id": petID, "vet_id": vetID, "date": day, "time": "09:30",
	})
	mustStatus(t, resp, http.StatusCreated)
}

func TestModifyAndDoneFlow(t *testing.T) {
	srv := newTestServer(t)

	_, client := doJSON(t, http.MethodPost, srv.URL+"/clients", map[string]any{
		"name": "Luis", "dni": "11111111A",
	})
	_, pet := doJSON(t, http.MethodPost, srv.URL+"/pets", map[string]any{
		"name": "Misu", "species": "cat", "client_id": client["id"],
	})
	_, vet := doJSON(t, http.MethodPost, srv.URL+"/vets", map[string]any{
		"name": "Dr. Soto", "dni": "22222222B",
	})

	resp, appt := doJSON(t, http.MethodPost, srv.URL+"/appointments", map[string]any{
		"pet_id": pet["id"], "vet_id": vet["id"], "date": futureDate(3), "time": "10:00",
	})
	mustStatus(t, resp, http.StatusCreated)
	apptID := appt["id"].(string)

	// PATCH parcial: confirmar y reprogramar.
	resp, updated := doJSON(t, http.MethodPatch, srv.URL+"/appointments/"+apptID, map[string]any{
		"status": "confirmed", "time": "11:00",
	})
	mustStatus(t, resp, http.StatusOK)
	if updated["status"] != "Confirmed" || updated["time"] != "11:00" {
		t.Errorf("updated = %v/%v, want Confirmed/11:00", updated["status"], updated["time"])
	}

	// Completar sin diagnóstico: 400.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/appointments/"+apptID+"/done", map[string]any{
		"diagnosis": "",
	})
	mustStatus(t, resp, http.StatusBadRequest)

	resp, done := doJSON(t, http.MethodPost, srv.URL+"/appointments/"+apptID+"/done", map[string]any{
		"diagnosis": "otitis leve",
	})
	mustStatus(t, resp, http.StatusOK)
	if done["status"] != "Done" || done["diagnosis"] != "otitis leve" {
		t.Errorf("done = %v/%v, want Done/otitis leve", done["status"], done["diagnosis"])
	}
}

func TestDeleteCascadesOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	_, client := doJSON(t, http.MethodPost, srv.URL+"/clients", map[string]any{
		"name": "Eva", "dni": "33333333C",
	})
	clientID := client["id"].(string)
	_, pet := doJSON(t, http.MethodPost, srv.URL+"/pets", map[string]any{
		"name": "Toby", "species": "dog", "client_id": clientID,
	})
	petID := pet["id"].(string)
	_, vet := doJSON(t, http.MethodPost, srv.URL+"/vets", map[string]any{
		"name": "Dra. Vega", "dni": "44444444D",
	})
	vetID := vet["id"].(string)

	resp, appt := doJSON(t, http.MethodPost, srv.URL+"/appointments", map[string]any{
		"pet_id": petID, "vet_id": vetID, "date": futureDate(4), "time": "12:00",
	})
	mustStatus(t, resp, http.StatusCreated)
	apptID := appt["id"].(string)

	// Borrar al veterinario deja la cita viva con vet_id nulo.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/vets/"+vetID, nil)
	mustStatus(t, resp, http.StatusNoContent)

	resp, orphan := doJSON(t, http.MethodGet, srv.URL+"/appointments/"+apptID, nil)
	mustStatus(t, resp, http.StatusOK)
	if orphan["vet_id"] != nil {
		t.Errorf("vet_id = %v, want null", orphan["vet_id"])
	}

	// Borrar al cliente arrastra mascota y cita.
	resp, _ = doJSON(t, http.MethodDelete, srv.URL+"/clients/"+clientID, nil)
	mustStatus(t, resp, http.StatusNoContent)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/pets/"+petID, nil)
	mustStatus(t, resp, http.StatusNotFound)
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/appointments/"+apptID, nil)
	mustStatus(t, resp, http.StatusNotFound)
}

func TestAnalyticsEndpoints(t *testing.T) {
	srv := newTestServer(t)

	_, client := doJSON(t, http.MethodPost, srv.URL+"/clients", map[string]any{
		"name": "Ana", "dni": "55555555E",
	})
	_, pet := doJSON(t, http.MethodPost, srv.URL+"/pets", map[string]any{
		"name": "Rocky", "species": "dog", "client_id": client["id"],
	})
	_, vet := doJSON(t, http.MethodPost, srv.URL+"/vets", map[string]any{
		"name": "Dra. Ruiz", "dni": "66666666F",
	})
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/appointments", map[string]any{
		"pet_id": pet["id"], "vet_id": vet["id"], "date": futureDate(1), "time": "10:00",
	})
	mustStatus(t, resp, http.StatusCreated)

	resp, sum := doJSON(t, http.MethodGet, srv.URL+"/analytics/summary", nil)
	mustStatus(t, resp, http.StatusOK)
	for key, want := range map[string]float64{
		"total_clients": 1, "total_pets": 1, "total_vets": 1,
		"total_appointments": 1, "pending_appointments": 1,
	} {
		if sum[key] != want {
			t.Errorf("summary[%s] = %v, want %v", key, sum[key], want)
		}
	}

	resp, busiest := doJSON(t, http.MethodGet, srv.URL+"/analytics/vets/busiest", nil)
	mustStatus(t, resp, http.StatusOK)
	if busiest["name"] != "Dra. Ruiz" {
		t.Errorf("busiest = %v, want Dra. Ruiz", busiest["name"])
	}

	resp, species := doJSON(t, http.MethodGet, srv.URL+"/analytics/species", nil)
	mustStatus(t, resp, http.StatusOK)
	if species["most_common"] != "dog" {
		t.Errorf("most_common = %v, want dog", species["most_common"])
	}

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/analytics/upcoming?window=week", nil)
	mustStatus(t, resp, http.StatusOK)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/analytics/upcoming?window=bogus", nil)
	mustStatus(t, resp, http.StatusBadRequest)
}

func TestDuplicateDNIOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/clients", map[string]any{
		"name": "Ana", "dni": "77777777G",
	})
	mustStatus(t, resp, http.StatusCreated)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/clients", map[string]any{
		"name": "Otra Ana", "dni": "77777777G",
	})
	mustStatus(t, resp, http.StatusConflict)
}

func TestListAppointmentFilters(t *testing.T) {
	srv := newTestServer(t)

	_, client := doJSON(t, http.MethodPost, srv.URL+"/clients", map[string]any{
		"name": "Ana", "dni": "88888888H",
	})
	_, pet := doJSON(t, http.MethodPost, srv.URL+"/pets", map[string]any{
		"name": "Rocky", "species": "dog", "client_id": client["id"],
	})
	_, vet := doJSON(t, http.MethodPost, srv.URL+"/vets", map[string]any{
		"name": "Dra. Ruiz", "dni": "99999999J",
	})

	day := futureDate(5)
	for _, hhmm := range []string{"09:00", "10:00"} {
		resp, _ := doJSON(t, http.MethodPost, srv.URL+"/appointments", map[string]any{
			"pet_id": pet["id"], "vet_id": vet["id"], "date": day, "time": hhmm,
		})
		mustStatus(t, resp, http.StatusCreated)
	}

	count := func(url string) int {
		t.Helper()
		resp, err := http.Get(url)
		if err != nil {
			t.Fatalf("GET %s: %v", url, err)
		}
		defer resp.Body.Close()
		mustStatus(t, resp, http.StatusOK)
		var items []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return len(items)
	}

	if n := count(srv.URL + "/appointments?status=pending"); n != 2 {
		t.Errorf("by status = %d, want 2", n)
	}
	if n := count(fmt.Sprintf("%s/appointments?date=%s", srv.URL, day)); n != 2 {
		t.Errorf("by date = %d, want 2", n)
	}
	if n := count(fmt.Sprintf("%s/appointments?vet_id=%s", srv.URL, vet["id"])); n != 2 {
		t.Errorf("by vet = %d, want 2", n)
	}
	if n := count(fmt.Sprintf("%s/clients/%s/appointments", srv.URL, client["id"])); n != 2 {
		t.Errorf("by client = %d, want 2", n)
	}
	if n := count(srv.URL + "/appointments?status=done"); n != 0 {
		t.Errorf("done = %d, want 0", n)
	}
}
