package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// End-to-end smoke test against a running instance: create a session,
// fill the intent, upload a PDF, submit, fetch and download the result.
// Needs a real GOOGLE_GEMINI_API_KEY on the server side.

var baseURL string

func prettyPrint(body []byte) {
	var v map[string]interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println(string(body))
		return
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(string(b))
}

func sendJSON(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout: extraction can take a while
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func uploadPDF(url, pdfPath string) (*http.Response, []byte, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, nil, err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("document", filepath.Base(pdfPath))
	if err != nil {
		return nil, nil, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, nil, err
	}
	writer.Close()

	req, err := http.NewRequest(http.MethodPost, baseURL+url, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	godotenv.Load()

	var pdfPath string
	flag.StringVar(&baseURL, "base-url", "http://localhost:3000/api", "API base URL")
	flag.StringVar(&pdfPath, "pdf", "", "Path to a PDF file to extract")
	flag.Parse()

	if pdfPath == "" {
		color.Red("Usage: smoke -pdf <file.pdf> [-base-url http://localhost:3000/api]")
		os.Exit(1)
	}

	color.Cyan("🚀 Starting PDF Extraction API smoke test\n")

	// 1. Create session
	color.Yellow("\n1. Create session")
	resp, body, err := sendJSON("POST", "/session/v1", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	var created struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	json.Unmarshal(body, &created)
	sessionID := created.Data.Id
	if sessionID == "" {
		color.Red("No session id in response")
		os.Exit(1)
	}

	// 2. Fill the intent
	color.Yellow("\n2. Update intent")
	intentReq := map[string]interface{}{
		"goal":     "Summarize the key points of this document",
		"entities": []string{"Title", "Author", "Date"},
		"style":    "bullet",
		"notes":    "Keep it short",
	}
	resp, body, err = sendJSON("PUT", "/extract/v1/"+sessionID+"/intent", intentReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 3. Upload the PDF
	color.Yellow("\n3. Upload document")
	resp, body, err = uploadPDF("/extract/v1/"+sessionID+"/document", pdfPath)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)

	// 4. Submit for extraction
	color.Yellow("\n4. Submit extraction")
	resp, body, err = sendJSON("POST", "/extract/v1/"+sessionID, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	prettyPrint(body)
	if resp.StatusCode != http.StatusOK {
		color.Red("Extraction failed, aborting")
		os.Exit(1)
	}

	// 5. Download the markdown artifact
	color.Yellow("\n5. Download result")
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/extract/v1/"+sessionID+"/download", nil)
	dlResp, err := (&http.Client{}).Do(req)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer dlResp.Body.Close()
	dlBody, _ := io.ReadAll(dlResp.Body)
	color.Green("Status: %s (%d bytes, %s)", dlResp.Status, len(dlBody), dlResp.Header.Get("Content-Disposition"))

	color.Cyan("\n✅ Smoke test complete")
}
