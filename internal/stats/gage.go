package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Nomes dos componentes de variância do estudo Gage R&R
const (
	GageComponentOperator       = "Operator"
	GageComponentPart           = "Part"
	GageComponentOperatorByPart = "Operator by Part"
	GageComponentMeasurement    = "Measurement"
)

// GageComponent é um componente de variância estimado pelo método ANOVA
type GageComponent struct {
	Name         string  `json:"name"`
	Variance     float64 `json:"variance"`
	StdDev       float64 `json:"std_dev"`
	Contribution float64 `json:"contribution"`
	StudyVar     float64 `json:"study_var"`
}

// GageResult resume o estudo de repetitividade e reprodutibilidade
type GageResult struct {
	Operators             int             `json:"operators"`
	Parts                 int             `json:"parts"`
	Replicates            int             `json:"replicates"`
	ANOVA                 []AnovaTerm     `json:"anova"`
	Components            []GageComponent `json:"components"`
	Repeatability         float64         `json:"repeatability"`
	Reproducibility       float64         `json:"reproducibility"`
	GageVariance          float64         `json:"gage_variance"`
	PartVariance          float64         `json:"part_variance"`
	TotalVariance         float64         `json:"total_variance"`
	PercentContributionRR float64         `json:"percent_contribution_rr"`
	PercentStudyVarRR     float64         `json:"percent_study_var_rr"`
	NDC                   int             `json:"ndc"`
}

// GageRnR estima os componentes de variância de um estudo cruzado
// operador x peça pelo método ANOVA. measurements é indexado por
// [operador][peça][réplica] e precisa ser retangular com ao menos duas
// réplicas por célula.
func GageRnR(measurements [][][]float64) (*GageResult, error) {
	o := len(measurements)
	if o < 2 {
		return nil, ErrInsufficientData
	}
	p := len(measurements[0])
	if p < 2 {
		return nil, ErrInsufficientData
	}
	r := len(measurements[0][0])
	if r < 2 {
		return nil, ErrInsufficientData
	}
	for _, byPart := range measurements {
		if len(byPart) != p {
			return nil, ErrInsufficientData
		}
		for _, replicates := range byPart {
			if len(replicates) != r {
				return nil, ErrInsufficientData
			}
		}
	}

	// 1. Médias por operador, por peça e por célula
	fo, fp, fr := float64(o), float64(p), float64(r)
	n := fo * fp * fr

	var grand float64
	operatorMeans := make([]float64, o)
	partMeans := make([]float64, p)
	cellMeans := make([][]float64, o)
	for i := range measurements {
		cellMeans[i] = make([]float64, p)
		for j := range measurements[i] {
			var cell float64
			for _, v := range measurements[i][j] {
				cell += v
			}
			cellMeans[i][j] = cell / fr
			operatorMeans[i] += cell
			partMeans[j] += cell
			grand += cell
		}
	}
	grand /= n
	for i := range operatorMeans {
		operatorMeans[i] /= fp * fr
	}
	for j := range partMeans {
		partMeans[j] /= fo * fr
	}

	// 2. Somas de quadrados
	var ssTotal, ssOperator, ssPart, ssCells float64
	for i := range measurements {
		ssOperator += fp * fr * (operatorMeans[i] - grand) * (operatorMeans[i] - grand)
		for j := range measurements[i] {
			ssCells += fr * (cellMeans[i][j] - grand) * (cellMeans[i][j] - grand)
			for _, v := range measurements[i][j] {
				ssTotal += (v - grand) * (v - grand)
			}
		}
	}
	for j := range partMeans {
		ssPart += fo * fr * (partMeans[j] - grand) * (partMeans[j] - grand)
	}
	ssInteraction := ssCells - ssOperator - ssPart
	if ssInteraction < 0 {
		ssInteraction = 0
	}
	ssError := ssTotal - ssCells
	if ssError <= 0 {
		return nil, ErrZeroVariance
	}

	dfOperator := o - 1
	dfPart := p - 1
	dfInteraction := dfOperator * dfPart
	dfError := o * p * (r - 1)

	msOperator := ssOperator / float64(dfOperator)
	msPart := ssPart / float64(dfPart)
	msInteraction := ssInteraction / float64(dfInteraction)
	msError := ssError / float64(dfError)

	// 3. Componentes de variância do modelo de efeitos aleatórios
	varRepeat := msError
	varInteraction := clampVariance((msInteraction - msError) / fr)
	varOperator := clampVariance((msOperator - msInteraction) / (fp * fr))
	varPart := clampVariance((msPart - msInteraction) / (fo * fr))

	reproducibility := varOperator + varInteraction
	gage := varRepeat + reproducibility
	total := gage + varPart
	if gage == 0 || total == 0 {
		return nil, ErrZeroVariance
	}

	sigmaTotal := math.Sqrt(total)
	components := []GageComponent{
		newGageComponent(GageComponentOperator, varOperator, total, sigmaTotal),
		newGageComponent(GageComponentPart, varPart, total, sigmaTotal),
		newGageComponent(GageComponentOperatorByPart, varInteraction, total, sigmaTotal),
		newGageComponent(GageComponentMeasurement, varRepeat, total, sigmaTotal),
	}

	anova := []AnovaTerm{
		newGageTerm(GageComponentOperator, ssOperator, dfOperator, msOperator, msInteraction, dfInteraction),
		newGageTerm(GageComponentPart, ssPart, dfPart, msPart, msInteraction, dfInteraction),
		newGageTerm(GageComponentOperatorByPart, ssInteraction, dfInteraction, msInteraction, msError, dfError),
		{
			Name:   GageComponentMeasurement,
			SumSq:  ssError,
			DF:     dfError,
			MeanSq: msError,
			F:      math.NaN(),
			PValue: math.NaN(),
		},
	}

	return &GageResult{
		Operators:             o,
		Parts:                 p,
		Replicates:            r,
		ANOVA:                 anova,
		Components:            components,
		Repeatability:         varRepeat,
		Reproducibility:       reproducibility,
		GageVariance:          gage,
		PartVariance:          varPart,
		TotalVariance:         total,
		PercentContributionRR: gage / total * 100,
		PercentStudyVarRR:     math.Sqrt(gage) / sigmaTotal * 100,
		NDC:                   distinctCategories(varPart, gage),
	}, nil
}

func newGageComponent(name string, variance, totalVariance, sigmaTotal float64) GageComponent {
	return GageComponent{
		Name:         name,
		Variance:     variance,
		StdDev:       math.Sqrt(variance),
		Contribution: variance / totalVariance * 100,
		StudyVar:     math.Sqrt(variance) / sigmaTotal * 100,
	}
}

func newGageTerm(name string, sumSq float64, df int, meanSq, msDenom float64, dfDenom int) AnovaTerm {
	term := AnovaTerm{
		Name:   name,
		SumSq:  sumSq,
		DF:     df,
		MeanSq: meanSq,
		F:      math.Inf(1),
		PValue: 0,
	}
	if msDenom > 0 {
		term.F = meanSq / msDenom
		fDist := distuv.F{D1: float64(df), D2: float64(dfDenom)}
		term.PValue = 1 - fDist.CDF(term.F)
	}
	return term
}

// distinctCategories é o número de categorias distintas que o sistema de
// medição consegue separar, com piso em 1
func distinctCategories(varPart, varGage float64) int {
	ndc := int(math.Floor(1.41 * math.Sqrt(varPart/varGage)))
	if ndc < 1 {
		ndc = 1
	}
	return ndc
}

func clampVariance(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
