package event

import "testing"

func TestBusDeliversByTopic(t *testing.T) {
	b := NewBus()
	var got []any
	b.Subscribe("a", func(p any) { got = append(got, p) })
	b.Subscribe("b", func(p any) { t.Fatalf("topic b should not receive %v", p) })

	b.Publish("a", 1)
	b.Publish("a", 2)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected deliveries: %v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBus()
	calls := 0
	sub := b.Subscribe("a", func(any) { calls++ })
	b.Publish("a", nil)
	sub.Unsubscribe()
	sub.Unsubscribe()
	b.Publish("a", nil)

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if b.Listeners("a") != 0 {
		t.Fatalf("expected no listeners left")
	}
}

func TestUnsubscribeDuringPublish(t *testing.T) {
	b := NewBus()
	var order []string
	var second Subscription
	b.Subscribe("a", func(any) {
		order = append(order, "first")
		second.Unsubscribe()
	})
	second = b.Subscribe("a", func(any) { order = append(order, "second") })

	b.Publish("a", nil)
	b.Publish("a", nil)

	want := []string{"first", "second", "first"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestZeroSubscriptionIsNoop(t *testing.T) {
	var s Subscription
	s.Unsubscribe()
}
