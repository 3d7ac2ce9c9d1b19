package corpus

import "strings"

// RegulationArticle is one entry of the internal regulation. The corpus is
// loaded once and never mutated.
type RegulationArticle struct {
	ID      string   `json:"id"`
	Article string   `json:"article"`
	Topics  []string `json:"topic"`
	Content string   `json:"content"`
}

var condoRegulations = []RegulationArticle{
	{
		ID:      "art-42",
		Article: "Art. 42",
		Topics:  []string{"obra", "varanda", "vidro", "fachada", "reforma"},
		Content: `O fechamento de varandas é permitido mediante aprovação em assembleia, devendo seguir rigorosamente o padrão "Sistema Reiki" com vidros incolores e sem esquadrias verticais aparentes. É proibida a alteração da cor da fachada ou instalação de cortinas fora do padrão "Rolô Off-White".`,
	},
	{
		ID:      "art-15",
		Article: "Art. 15",
		Topics:  []string{"silêncio", "barulho", "obra", "horário"},
		Content: "O horário de silêncio é compreendido entre 22h00 e 07h00. Obras e reformas ruidosas são permitidas apenas de segunda a sexta-feira, das 08h00 às 17h00, sendo proibidas aos sábados, domingos e feriados.",
	},
	{
		ID:      "art-28",
		Article: "Art. 28",
		Topics:  []string{"animais", "pet", "cachorro", "gato", "área comum"},
		Content: "É permitida a permanência de animais nas unidades, desde que não perturbem o sossego. Nas áreas comuns, os animais devem transitar obrigatoriamente no colo ou em caixa de transporte, sendo vedada sua circulação em áreas de lazer como piscina, salão de festas e playground.",
	},
	{
		ID:      "art-50",
		Article: "Art. 50",
		Topics:  []string{"mudança", "elevador", "horário", "agendamento"},
		Content: "Mudanças devem ser agendadas com no mínimo 72h de antecedência. O horário permitido é de segunda a sexta, das 08h00 às 18h00, e sábados das 08h00 às 14h00. É obrigatório o uso do elevador de serviço com acolchoamento de proteção.",
	},
}

// All returns the full corpus in declaration order. Callers must not modify
// the returned slice.
func All() []RegulationArticle {
	return condoRegulations
}

// Match is a scored retrieval hit.
type Match struct {
	Article RegulationArticle
	Score   int
}

// Search ranks articles by how many of their topic keywords occur as
// substrings of the lower-cased message. Returns the best match and true, or
// false when no article scores above zero. Ties keep declaration order.
func Search(lowerMsg string) (Match, bool) {
	best := Match{}
	found := false
	for _, reg := range condoRegulations {
		score := 0
		for _, topic := range reg.Topics {
			if strings.Contains(lowerMsg, topic) {
				score++
			}
		}
		if score > 0 && (!found || score > best.Score) {
			best = Match{Article: reg, Score: score}
			found = true
		}
	}
	return best, found
}
