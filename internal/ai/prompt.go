package ai

import (
	"bytes"
	"strconv"
	"text/template"
)

var sexLabels = map[string]string{
	"male":   "masculino",
	"female": "feminino",
	"other":  "outro",
}

var levelLabels = map[string]string{
	"beginner":     "Iniciante",
	"intermediate": "Intermediário",
	"advanced":     "Avançado",
}

var promptTemplate = template.Must(template.New("prompt").Parse(`Atue como um Personal Trainer de elite e fisiologista.
Crie um plano de treino de musculação completo e seguro.

DADOS DO ALUNO:
- Perfil: {{.Age}} anos, sexo {{.Sex}}, {{.Weight}}kg, {{.Height}}cm.
- Nível de Experiência: {{.Level}}
- Objetivo Principal: {{.Objective}}
- Disponibilidade: {{.Days}} dias por semana, {{.Minutes}} minutos por treino.
- Local: {{if .Gym}}academia completa{{else}}em casa, equipamentos disponíveis: "{{.Equipment}}"{{end}}

RESTRIÇÕES MÉDICAS / LESÕES:
"{{.Limitations}}"

DIRETRIZES DE SEGURANÇA (CRÍTICO):
1. Se houver lesões citadas acima, você DEVE excluir exercícios que sobrecarreguem a região afetada.
2. Substitua movimentos perigosos por variantes biomecanicamente seguras.
3. Crie exatamente {{.Days}} dias de treino.

FORMATO DE RESPOSTA (JSON OBRIGATÓRIO):
Responda apenas com um objeto JSON seguindo estritamente esta estrutura:
{
  "nome": "Nome criativo e motivador do programa",
  "descricao": "Explicação técnica resumida do foco da periodização",
  "dias": [
    {
      "nome": "Treino A - [Foco]",
      "foco": "Empurrar/Puxar/Pernas/Fullbody",
      "exercicios": [
        {
          "nome": "Nome do Exercício (em Português)",
          "equipamento": "Halteres, Barra, Máquina, ou Peso Corporal",
          "series": 4,
          "repeticoes": "10-12",
          "descanso": "60s",
          "observacao": "Dica de segurança ou técnica"
        }
      ]
    }
  ]
}
`))

type promptData struct {
	Age         int
	Sex         string
	Weight      string
	Height      int
	Level       string
	Objective   string
	Days        int
	Minutes     int
	Gym         bool
	Equipment   string
	Limitations string
}

// BuildPrompt renders the generation prompt for p. p must come from
// ParseProfile so that its free text is already sanitised.
func BuildPrompt(p Profile) (string, error) {
	data := promptData{
		Age:         p.Age,
		Sex:         sexLabels[string(p.Sex)],
		Weight:      formatWeight(p.WeightKg),
		Height:      p.HeightCm,
		Level:       levelLabels[string(p.Level)],
		Objective:   p.ObjectiveLabel,
		Days:        p.DaysPerWeek,
		Minutes:     p.MinutesPerSession,
		Gym:         p.GymAccess,
		Equipment:   p.HomeEquipment,
		Limitations: p.Limitations,
	}
	if data.Objective == "" {
		data.Objective = string(p.Objective)
	}
	if data.Limitations == "" {
		data.Limitations = "Nenhuma restrição declarada."
	}
	if data.Equipment == "" {
		data.Equipment = "peso corporal"
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatWeight(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64)
}
