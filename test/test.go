package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

func main() {
	client := http.Client{}
	baseurl := "http://127.0.0.1:7320/api/auth/login"
	body := `{"username":"admin","password":"admin"}`
	req, err := http.NewRequestWithContext(context.Background(), "POST", baseurl, strings.NewReader(body))
	if err != nil {
		fmt.Println("can't create request")
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("err:", err)
		return
	}
	data, _ := io.ReadAll(resp.Body)
	fmt.Println(string(data))
	resp.Body.Close()

	token := ""
	listReq, err := http.NewRequestWithContext(context.Background(), "GET",
		"http://127.0.0.1:7320/api/projects", http.NoBody)
	if err != nil {
		fmt.Println("can't create request")
		return
	}
	listReq.Header.Set("Authorization", "Bearer "+token)
	listReq.Header.Set("accept", "application/json")

	listResp, err := client.Do(listReq)
	if err != nil {
		fmt.Println("err:", err)
		return
	}
	data, _ = io.ReadAll(listResp.Body)
	fmt.Println(string(data))
	listResp.Body.Close()
}
