package main

import (
	"net/http"
	"strings"
	"testing"
)

type uploadsResponse struct {
	Message string   `json:"message"`
	Uploads []Upload `json:"uploads"`
}

func TestUploadFiles(t *testing.T) {
	t.Run("should accept a utf-8 transactional csv", func(t *testing.T) {
		resetStore()

		recorder := makeUploadRequest(uploadPart{"odr_res.csv", []byte(transactionalCSV)})
		assertStatusCode(t, http.StatusOK, recorder.Code)

		var resp uploadsResponse
		assertNoError(t, parseJSONResponse(recorder, &resp))

		if len(resp.Uploads) != 1 {
			t.Fatalf("Expected 1 upload result, got %d", len(resp.Uploads))
		}
		u := resp.Uploads[0]
		if !u.OK {
			t.Errorf("Expected upload to succeed, got error %q", u.Error)
		}
		if u.Layout != LayoutTransactional {
			t.Errorf("Expected transactional layout, got %q", u.Layout)
		}
		if u.Encoding != encodingUTF8 {
			t.Errorf("Expected utf-8 encoding, got %q", u.Encoding)
		}
		if u.RowCount != 3 {
			t.Errorf("Expected 3 rows, got %d", u.RowCount)
		}
		if u.ID == "" {
			t.Error("Expected a generated upload ID")
		}
	})

	t.Run("should accept a cp932 matrix csv", func(t *testing.T) {
		resetStore()

		recorder := makeUploadRequest(uploadPart{"checklist.csv", encodeCP932(t, matrixCSV)})
		assertStatusCode(t, http.StatusOK, recorder.Code)

		var resp uploadsResponse
		assertNoError(t, parseJSONResponse(recorder, &resp))

		u := resp.Uploads[0]
		if u.Layout != LayoutMatrix {
			t.Errorf("Expected matrix layout, got %q", u.Layout)
		}
		if u.Encoding != encodingCP932 {
			t.Errorf("Expected cp932 encoding, got %q", u.Encoding)
		}
		if u.RowCount != 2 {
			t.Errorf("Expected 2 rows, got %d", u.RowCount)
		}
	})

	t.Run("should merge mixed-encoding files without mojibake", func(t *testing.T) {
		resetStore()

		recorder := makeUploadRequest(
			uploadPart{"utf8.csv", []byte(transactionalCSV)},
			uploadPart{"cp932.csv", encodeCP932(t, matrixCSV)},
		)
		assertStatusCode(t, http.StatusOK, recorder.Code)

		var resp uploadsResponse
		assertNoError(t, parseJSONResponse(recorder, &resp))
		if len(resp.Uploads) != 2 {
			t.Fatalf("Expected 2 upload results, got %d", len(resp.Uploads))
		}
		// Results come back in upload order regardless of parse timing.
		if resp.Uploads[0].FileName != "utf8.csv" || resp.Uploads[1].FileName != "cp932.csv" {
			t.Errorf("Expected upload order preserved, got %q then %q",
				resp.Uploads[0].FileName, resp.Uploads[1].FileName)
		}

		for _, r := range store.allRecords() {
			if strings.ContainsRune(r.ProductName, '�') {
				t.Errorf("Mojibake in merged product name %q", r.ProductName)
			}
		}
		if got := len(store.allRecords()); got != 5 {
			t.Errorf("Expected 5 merged records, got %d", got)
		}
	})

	t.Run("should accept an xlsx workbook", func(t *testing.T) {
		resetStore()

		data := buildTestWorkbook(t, [][]string{
			{"納品日", "部門", "商品コード", "商品名", "発注数量", "売単価", "発注区分"},
			{"20240501", "12", "4900000000001", "テスト商品A", "3", "100", ""},
		})
		recorder := makeUploadRequest(uploadPart{"order.xlsx", data})
		assertStatusCode(t, http.StatusOK, recorder.Code)

		var resp uploadsResponse
		assertNoError(t, parseJSONResponse(recorder, &resp))
		u := resp.Uploads[0]
		if !u.OK {
			t.Fatalf("Expected workbook upload to succeed, got %q", u.Error)
		}
		if u.RowCount != 1 {
			t.Errorf("Expected 1 row, got %d", u.RowCount)
		}
	})

	t.Run("should report an unrecognized file without failing the batch", func(t *testing.T) {
		resetStore()

		recorder := makeUploadRequest(
			uploadPart{"garbage.csv", []byte("id,name\n1,foo\n")},
			uploadPart{"good.csv", []byte(transactionalCSV)},
		)
		assertStatusCode(t, http.StatusOK, recorder.Code)

		var resp uploadsResponse
		assertNoError(t, parseJSONResponse(recorder, &resp))
		if len(resp.Uploads) != 2 {
			t.Fatalf("Expected 2 upload results, got %d", len(resp.Uploads))
		}
		if resp.Uploads[0].OK {
			t.Error("Expected the unrecognized file to be reported as failed")
		}
		if resp.Uploads[0].Error == "" {
			t.Error("Expected an error message for the failed file")
		}
		if !resp.Uploads[1].OK {
			t.Errorf("Expected the good file to parse, got %q", resp.Uploads[1].Error)
		}
		if got := len(store.allRecords()); got != 3 {
			t.Errorf("Expected only the good file's records, got %d", got)
		}
	})

	t.Run("should return 400 when no file is uploaded", func(t *testing.T) {
		resetStore()

		recorder := makeRequest("POST", "/api/uploads", nil)
		assertStatusCode(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetUploads(t *testing.T) {
	t.Run("should list uploads in upload order", func(t *testing.T) {
		resetStore()

		makeUploadRequest(uploadPart{"first.csv", []byte(transactionalCSV)})
		makeUploadRequest(uploadPart{"second.csv", encodeCP932(t, matrixCSV)})

		recorder := makeRequest("GET", "/api/uploads", nil)
		assertStatusCode(t, http.StatusOK, recorder.Code)

		var uploads []Upload
		assertNoError(t, parseJSONResponse(recorder, &uploads))
		if len(uploads) != 2 {
			t.Fatalf("Expected 2 uploads, got %d", len(uploads))
		}
		if uploads[0].FileName != "first.csv" || uploads[1].FileName != "second.csv" {
			t.Errorf("Expected upload order preserved, got %q then %q",
				uploads[0].FileName, uploads[1].FileName)
		}
	})

	t.Run("should return an empty list for a fresh session", func(t *testing.T) {
		resetStore()

		recorder := makeRequest("GET", "/api/uploads", nil)
		assertStatusCode(t, http.StatusOK, recorder.Code)

		var uploads []Upload
		assertNoError(t, parseJSONResponse(recorder, &uploads))
		if len(uploads) != 0 {
			t.Errorf("Expected no uploads, got %d", len(uploads))
		}
	})
}

func TestClearUploads(t *testing.T) {
	t.Run("should remove every upload and record", func(t *testing.T) {
		resetStore()

		makeUploadRequest(uploadPart{"odr_res.csv", []byte(transactionalCSV)})

		recorder := makeRequest("DELETE", "/api/uploads", nil)
		assertStatusCode(t, http.StatusOK, recorder.Code)

		if got := len(store.list()); got != 0 {
			t.Errorf("Expected no uploads after clear, got %d", got)
		}
		if got := len(store.allRecords()); got != 0 {
			t.Errorf("Expected no records after clear, got %d", got)
		}
	})
}
