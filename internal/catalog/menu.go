package catalog

import "github.com/nikolayk812/broka-order/internal/domain"

var (
	bacon  = domain.MenuAddOn{ID: "bacon", Name: "Bacon Crocante", Price: domain.BRL("5.00")}
	cheese = domain.MenuAddOn{ID: "cheese", Name: "Queijo Extra", Price: domain.BRL("3.00")}
)

var featured = []domain.MenuItem{
	{
		ID:          "1",
		Name:        "Broka Smash Bacon",
		Description: "Hambúrguer artesanal, queijo cheddar, alface, tomate, cebola roxa e molho especial",
		Price:       domain.BRL("28.90"),
		Image:       "/broka-smash-bacon.png",
		AddOns: []domain.MenuAddOn{
			bacon,
			cheese,
			{ID: "egg", Name: "Ovo Frito", Price: domain.BRL("4.00")},
		},
	},
	{
		ID:          "2",
		Name:        "Broka BBQ",
		Description: "Hambúrguer defumado, queijo provolone, cebola caramelizada e molho barbecue",
		Price:       domain.BRL("32.90"),
		Image:       "/broka-bbq.png",
		AddOns: []domain.MenuAddOn{
			bacon,
			{ID: "onion-rings", Name: "Anéis de Cebola", Price: domain.BRL("6.00")},
		},
	},
	{
		ID:          "3",
		Name:        "Broka Veggie",
		Description: "Hambúrguer de grão-de-bico, queijo vegano, rúcula, tomate seco e pesto",
		Price:       domain.BRL("26.90"),
		Image:       "/broka-veggie.png",
		AddOns: []domain.MenuAddOn{
			{ID: "avocado", Name: "Abacate", Price: domain.BRL("4.00")},
			{ID: "sprouts", Name: "Brotos", Price: domain.BRL("2.00")},
		},
	},
}

var burgers = append(append([]domain.MenuItem{}, featured...),
	domain.MenuItem{
		ID:          "4",
		Name:        "Broka Spicy",
		Description: "Pão brioche selado na manteiga, Molho especial, um smash burger de carne bovina 80g, alho frito, cebola crispy.",
		Price:       domain.BRL("30.90"),
		Image:       "/broka-smash-lupi.png",
		AddOns: []domain.MenuAddOn{
			{ID: "extra-spicy", Name: "Extra Pimenta", Price: domain.BRL("2.00")},
			bacon,
		},
	},
	domain.MenuItem{
		ID:          "5",
		Name:        "Broka Smash Classic",
		Description: "Dois hambúrgueres, queijo cheddar duplo, alface, tomate e molho especial",
		Price:       domain.BRL("38.90"),
		Image:       "/broka-smash-classic.png",
		AddOns:      []domain.MenuAddOn{bacon, cheese},
	},
	domain.MenuItem{
		ID:          "6",
		Name:        "Broka Ease",
		Description: "Filé de peixe empanado, queijo, alface, tomate e molho tártaro",
		Price:       domain.BRL("29.90"),
		Image:       "/broka-ease.png",
		AddOns: []domain.MenuAddOn{
			{ID: "lemon", Name: "Limão Extra", Price: domain.BRL("1.00")},
			{ID: "pickles", Name: "Picles", Price: domain.BRL("2.00")},
		},
	},
)

var drinks = []domain.MenuItem{
	{ID: "d1", Name: "Coca-Cola 350ml", Description: "Refrigerante gelado", Price: domain.BRL("5.90"), Image: "/coca350ml.jpeg", AddOns: []domain.MenuAddOn{}},
	{ID: "d2", Name: "Guaraná 350ml", Description: "Laranja, limão ou maracujá", Price: domain.BRL("8.90"), Image: "/guarana350ml.jpg", AddOns: []domain.MenuAddOn{}},
	{ID: "d3", Name: "Água Mineral 500ml", Description: "Água gelada", Price: domain.BRL("3.90"), Image: "/placeholder.svg", AddOns: []domain.MenuAddOn{}},
	{ID: "d4", Name: "Milkshake 400ml", Description: "Chocolate, morango ou baunilha", Price: domain.BRL("12.90"), Image: "/placeholder.svg", AddOns: []domain.MenuAddOn{}},
}

// Default returns the Broka Burguer menu.
func Default() *Catalog {
	c, err := New([]Section{
		{ID: "featured", Title: "Destaques", Subtitle: "Nossos hambúrgueres mais populares", Items: featured},
		{ID: "burgers", Title: "Hambúrgueres", Subtitle: "Explore nosso cardápio completo", Items: burgers},
		{ID: "drinks", Title: "Bebidas", Subtitle: "Para acompanhar seu hambúrguer", Items: drinks},
	})
	if err != nil {
		panic("catalog: default menu is invalid: " + err.Error())
	}
	return c
}
