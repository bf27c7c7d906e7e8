package ai

import (
	"fmt"
	"strings"
)

const systemPrompt = "Eres un asistente de marketing para pequeños negocios. Responde siempre en español."

func descriptionPrompt(details ProductDetails) string {
	price := strings.TrimSpace(details.Price)
	if price == "" {
		price = "No especificado"
	}
	return fmt.Sprintf(`Genera una descripción de producto concisa y atractiva (aproximadamente 3-4 frases) en español para el siguiente producto. Enfócate en los beneficios clave y en un tono que invite a la compra.
- Nombre del Producto: %q
- Categoría: %q
- Precio: %q
- Idea Clave/Características: %q

Descripción Generada:`, details.Name, details.Category, price, details.Idea)
}

func categoriesPrompt(name, idea string) string {
	return fmt.Sprintf(`Basado en el siguiente producto, sugiere 3 categorías relevantes en español.
- Nombre del Producto: %q
- Idea Clave/Características: %q

Devuelve las categorías como un array JSON de strings. Por ejemplo: ["Categoría Ejemplo 1", "Categoría Ejemplo 2", "Categoría Ejemplo 3"].
No incluyas ninguna otra explicación, solo el array JSON.`, name, idea)
}

func marketingPrompt(prompt string) string {
	return strings.TrimSpace(prompt) + `

Por favor, proporciona solo el contenido solicitado, sin introducciones o comentarios adicionales a menos que se especifique en la tarea.`
}
