package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sonakshi-pos/internal/database"
	"sonakshi-pos/internal/models"
	"sonakshi-pos/internal/pos"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"
)

// RunAgent answers a shopkeeper's question with tool access to the
// catalog and the sales ledger.
func RunAgent(userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the assistant built into a retail POS system.

RULES:
1. UPDATE: If a user asks to change a price by item NAME, do NOT ask for the ID. Instead:
   - Call 'check_inventory' to find the item's id.
   - Call 'update_item_price' using that id.

2. READ: If a user asks for PRICE, STOCK, BARCODE or DETAILS of an item:
   - Call 'check_inventory' to get the full list, then read the JSON and answer.

3. SALES: If the user asks about sales or revenue, use 'get_sales_report'.

USER: %s`, today, userMessage)

	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_inventory",
					Description: "Get the full item list. Use this to find ANY item's id, name, barcode, price or stock.",
				},
				{
					Name:        "update_item_price",
					Description: "Update the selling price of an item using its id",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"item_id":   {Type: genai.TypeString, Description: "Id of the item"},
							"new_price": {Type: genai.TypeNumber, Description: "New selling price"},
						},
						Required: []string{"item_id", "new_price"},
					},
				},
				{
					Name:        "create_item",
					Description: "Add a new item to the catalog. Barcode and SKU are generated automatically.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"name":          {Type: genai.TypeString, Description: "Name of the item"},
							"category":      {Type: genai.TypeString, Description: "Category (Grocery, Stationery, etc)"},
							"selling_price": {Type: genai.TypeNumber, Description: "Selling price"},
							"stock":         {Type: genai.TypeInteger, Description: "Initial stock count"},
						},
						Required: []string{"name", "category", "selling_price", "stock"},
					},
				},
				{
					Name:        "get_sales_report",
					Description: "Get total sales revenue and invoice count for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			switch funcCall.Name {
			case "check_inventory":
				var items []models.Item
				database.DB.Find(&items)

				type simpleItem struct {
					ID      string  `json:"id"`
					Name    string  `json:"name"`
					Barcode string  `json:"barcode"`
					Stock   int     `json:"stock"`
					Price   float64 `json:"price"`
				}
				var simpleList []simpleItem
				for _, item := range items {
					simpleList = append(simpleList, simpleItem{
						ID:      item.ID,
						Name:    item.Name,
						Barcode: item.Barcode,
						Stock:   item.Stock,
						Price:   item.SellingPrice.InexactFloat64(),
					})
				}

				jsonBytes, _ := json.Marshal(simpleList)

				toolResp := genai.FunctionResponse{
					Name:     "check_inventory",
					Response: map[string]interface{}{"inventory": string(jsonBytes)},
				}

				finalResp, err := session.SendMessage(ctx, toolResp)
				if err != nil {
					return "", err
				}

				return handleRecursiveToolCalls(ctx, session, finalResp), nil

			case "update_item_price":
				return executeUpdatePrice(ctx, session, funcCall), nil

			case "create_item":
				return executeCreateItem(ctx, session, funcCall), nil

			case "get_sales_report":
				return executeSalesReport(ctx, session, funcCall), nil
			}
		}
	}

	return printResponse(resp), nil
}

// The model often answers a name-based request in two hops: inventory
// lookup first, then the price update.
func handleRecursiveToolCalls(ctx context.Context, session *genai.ChatSession, resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			if funcCall.Name == "update_item_price" {
				return executeUpdatePrice(ctx, session, funcCall)
			}
		}
	}
	return printResponse(resp)
}

func executeUpdatePrice(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	itemID, _ := args["item_id"].(string)
	newPrice, _ := args["new_price"].(float64)

	result := database.DB.Model(&models.Item{}).
		Where("id = ?", itemID).
		Update("selling_price", decimal.NewFromFloat(newPrice))

	msg := "Success"
	if result.RowsAffected == 0 {
		msg = "Item not found"
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "update_item_price",
		Response: map[string]interface{}{"status": msg, "new_price": newPrice},
	})
	return printResponse(finalResp)
}

func executeCreateItem(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	name, _ := args["name"].(string)
	category, _ := args["category"].(string)
	price, _ := args["selling_price"].(float64)
	stock, _ := args["stock"].(float64)

	item := models.Item{
		ID:           uuid.NewString(),
		Name:         name,
		Category:     category,
		SellingPrice: decimal.NewFromFloat(price),
		Stock:        int(stock),
		Barcode:      pos.GenerateBarcode(),
		SKU:          pos.GenerateSKU(category, name),
	}
	database.DB.Create(&item)

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "create_item",
		Response: map[string]interface{}{"status": "created", "id": item.ID, "barcode": item.Barcode},
	})
	return printResponse(finalResp)
}

func executeSalesReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	startStr, _ := args["start_date"].(string)
	endStr, _ := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)

	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := database.GetSalesReport(start, end)
	if err != nil {
		return "Error calculating sales."
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_sales_report",
		Response: map[string]interface{}{
			"revenue":     report.TotalRevenue.InexactFloat64(),
			"sales_count": report.TotalCount,
		},
	})
	return printResponse(finalResp)
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
