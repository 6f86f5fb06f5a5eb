package pipeline

import (
	"fmt"
	"strings"

	"ordersift/internal"
)

const extractionTemplate = `You are an assistant specialized in analyzing purchase request emails.

TASK: Extract the following information from the email below:
1. Products - every product requested, identified by catalog code/SKU when one is given, otherwise by product name
2. Quantities - for each product, the requested quantity
3. Delivery requirements - delivery date, address, or special handling instructions

EMAIL:
%s

Respond in the following JSON format:
{
  "products": [
    {
      "sku": "product_code",
      "name": "product_name",
      "quantity": number,
      "unit": "unit_of_measure"
    }
  ],
  "delivery": {
    "date": "YYYY-MM-DD",
    "address": "delivery_address",
    "special_instructions": "any_special_handling"
  }
}

Only include fields that are explicitly mentioned in the email. If information is missing, omit the field rather than inventing a value. Use "sku" when the email gives a product code and "name" otherwise.`

const verificationTemplate = `You are an assistant that verifies product information for an order.

TASK: For each product in the order, verify whether it exists in the product catalog below and whether the requested quantity is orderable.

Products in order:
%s

Product catalog information:
%s

Respond in the following JSON format:
{
  "verified_products": [
    {
      "sku": "product_code",
      "name": "product_name",
      "found_in_catalog": true,
      "quantity": number,
      "quantity_available": number,
      "minimum_order_quantity": number,
      "quantity_valid": true,
      "price": number
    }
  ],
  "missing_products": ["sku1", "sku2"],
  "total_price": number
}`

const solutionTemplate = `You are an assistant that helps solve problems with customer orders.

TASK: Analyze the order validation results and propose solutions for any issues found.

Order validation results:
%s

For each issue, propose practical solutions:

1. For missing products (identifiers that don't exist in the catalog):
   - Suggest similar products that could substitute
   - Suggest how to correct possible typos in SKU numbers

2. For minimum order quantity issues:
   - Suggest increasing the order to meet minimum requirements
   - Suggest combining orders with future purchases
   - Suggest alternative smaller products without MOQ issues

3. For inventory availability issues:
   - Suggest alternative products that are in stock
   - Suggest waiting time for restocking
   - Suggest partial fulfillment options

Be specific, practical and business-oriented in your suggestions.
Format your response as a clear, concise list of recommendations.`

const insightTemplate = `Analyze the following order verification results and provide business insights:

%s

Provide insights on:
1. Order completeness and any issues
2. Inventory implications
3. Customer service recommendations
4. Business value of this order

Format your response as a concise bullet-point list with action items for each category.`

func extractionPrompt(normalizedEmail string) string {
	return fmt.Sprintf(extractionTemplate, normalizedEmail)
}

func verificationPrompt(products []internal.RequestedItem, catalogSample string) string {
	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "Identifier: %s, Quantity: %d\n", p.Identifier(), p.Quantity)
	}
	return fmt.Sprintf(verificationTemplate, b.String(), catalogSample)
}

func solutionPrompt(serializedResults string) string {
	return fmt.Sprintf(solutionTemplate, serializedResults)
}

func insightPrompt(serializedResults string) string {
	return fmt.Sprintf(insightTemplate, serializedResults)
}
